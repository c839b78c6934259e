package metrics

import "time"

// AnalysisStarted records a contract handed to the analyzer.
func AnalysisStarted(contractType string) {
	ContractsSubmitted.WithLabelValues(contractType).Inc()
}

// AnalysisCompleted records a successful analysis and its score.
func AnalysisCompleted(contractType string, score int, duration time.Duration) {
	AnalysesTotal.WithLabelValues("completed").Inc()
	AnalysisDuration.Observe(duration.Seconds())
	ComplianceScore.WithLabelValues(contractType).Observe(float64(score))
}

// AnalysisFailed records an analysis that ended in an error.
func AnalysisFailed(duration time.Duration) {
	AnalysesTotal.WithLabelValues("failed").Inc()
	AnalysisDuration.Observe(duration.Seconds())
}

// AnalysisDiscarded records an outcome that arrived after a reset or a
// newer submission.
func AnalysisDiscarded() {
	AnalysesTotal.WithLabelValues("discarded").Inc()
}

// LanguageToggled records a locale switch.
func LanguageToggled(to string) {
	LanguageToggles.WithLabelValues(to).Inc()
}
