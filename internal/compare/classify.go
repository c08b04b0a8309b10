package compare

// classify maps a verdict to a discrepancy severity. Missing verdicts only
// arise for required terms, so both invalid and missing escalate to critical
// when the rule is required.
func classify(verdict Verdict, required bool) Severity {
	switch verdict {
	case Invalid, Missing:
		if required {
			return SeverityCritical
		}
		return SeverityMinor
	case Warning:
		return SeverityMinor
	default:
		return SeverityNone
	}
}
