package persona

// ID identifies a roundtable persona. The set is closed: every valid ID has
// exactly one concrete Persona implementation registered at startup.
type ID string

const (
	Director           ID = "director"
	Cinematographer    ID = "cinematographer"
	Editor             ID = "editor"
	SoundDesigner      ID = "sound_designer"
	PlatformStrategist ID = "platform_strategist"
)

func (id ID) String() string {
	return string(id)
}

// PromptInput carries everything a persona needs to build its prompts for
// one session. PriorSpeakers is the accumulated list of display names of
// personas that have already completed their conversational turn; it is
// only consulted by ConversationalPrompt.
type PromptInput struct {
	Brief         string
	Context       string
	Platform      string
	PriorSpeakers []string
}

// Persona is one member of the creative roundtable. Implementations are
// immutable and safe for concurrent use; both prompt builders are pure
// functions of their input.
type Persona interface {
	ID() ID
	DisplayName() string
	Role() string
	Expertise() string
	Personality() string

	// ConversationalPrompt builds the streamed "in-meeting" prompt. The
	// returned prompt references prior speakers so later personas can
	// build on what has already been said.
	ConversationalPrompt(in PromptInput) string

	// TechnicalPrompt builds the hidden structured-analysis prompt whose
	// output feeds synthesis. It never references other personas.
	TechnicalPrompt(in PromptInput) string
}

// profile holds the static identity shared by all concrete personas.
type profile struct {
	id          ID
	displayName string
	role        string
	expertise   string
	personality string
}

func (p profile) ID() ID              { return p.id }
func (p profile) DisplayName() string { return p.displayName }
func (p profile) Role() string        { return p.role }
func (p profile) Expertise() string   { return p.expertise }
func (p profile) Personality() string { return p.personality }
