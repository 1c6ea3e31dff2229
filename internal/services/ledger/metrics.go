package ledger

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	RecordTransaction(txType string, amount int)
	RecordBalanceChange(userID uint, oldBalance, newBalance int)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, int)      {}
func (n *NoopMetricsCollector) RecordBalanceChange(uint, int, int) {}
func (n *NoopMetricsCollector) RecordError(string, string)         {}
