package nutrition

// WarningSeverity categorizes how serious a finding is. The UI maps these to
// banner colors, the engine only emits structured data.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding attached to resolved goals or generated
// plans. Policy overrides (deficit blocks, floors, basis substitutions) must
// always be paired with one of these; dropping a warning is a correctness
// defect, not a cosmetic choice.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
	Metric   string          `json:"metric,omitempty"`
	Value    float64         `json:"value,omitempty"`
	Limit    float64         `json:"limit,omitempty"`
}
