package expertchat

// Persona is the display label of an instruction profile.
type Persona string

const (
	TechnicalExpert    Persona = "技術専門家"
	BusinessStrategist Persona = "ビジネス戦略家"
)

const (
	technicalExpertInstruction = "あなたは最先端の技術動向に精通した技術専門家です。" +
		"質問に対して、技術的な観点から詳細かつ正確な情報を提供してください。"
	businessStrategistInstruction = "あなたは市場分析と事業戦略の策定に長けたビジネス戦略家です。" +
		"質問に対して、ビジネス的な視点から実用的で洞察に富んだアドバイスを提供してください。"
	// GenericInstruction is used for any label that is not a known persona.
	GenericInstruction = "あなたは一般的なアシスタントです。" +
		"質問に対して、丁寧かつ分かりやすく回答してください。"
)

// Personas returns the recognized personas in display order. The first
// one is the default selection.
func Personas() []Persona {
	return []Persona{TechnicalExpert, BusinessStrategist}
}

// Instruction returns the system instruction for the persona.
func (p Persona) Instruction() string {
	switch p {
	case TechnicalExpert:
		return technicalExpertInstruction
	case BusinessStrategist:
		return businessStrategistInstruction
	default:
		return GenericInstruction
	}
}

// Resolve maps a persona label to its system instruction. Unknown labels,
// including the empty string, fall back to GenericInstruction.
func Resolve(label string) string {
	return Persona(label).Instruction()
}
