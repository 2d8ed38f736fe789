package metrics

// IncrementDrawCreated increments the draw creation counter
func (m *Metrics) IncrementDrawCreated() {
	m.safeExecute("IncrementDrawCreated", func() {
		m.DrawCreatedTotal.Inc()
	})
}

// IncrementRedemption increments the first-time redemption counter
func (m *Metrics) IncrementRedemption() {
	m.safeExecute("IncrementRedemption", func() {
		m.RedemptionsTotal.Inc()
	})
}

// SetDrawsTotal sets the total draws gauge
func (m *Metrics) SetDrawsTotal(count int64) {
	m.safeExecute("SetDrawsTotal", func() {
		m.DrawsTotal.Set(float64(count))
	})
}

// SetRedeemedParticipants sets the redeemed participants gauge
func (m *Metrics) SetRedeemedParticipants(count int64) {
	m.safeExecute("SetRedeemedParticipants", func() {
		m.RedeemedParticipants.Set(float64(count))
	})
}
