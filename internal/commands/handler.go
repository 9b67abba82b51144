package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-esge/internal"
	"github.com/pixil98/go-esge/internal/game"
	"golang.org/x/text/cases"
)

// Request is what a compiled command sees when it builds its action.
type Request struct {
	Ingame *game.Ingame
	// Inputs holds parsed input values keyed by input name.
	Inputs map[string]any
	config map[string]any
}

// Expand returns the config value at key with input templates expanded. A
// missing key yields "".
func (r *Request) Expand(key string) (string, error) {
	raw, ok := r.config[key]
	if !ok || raw == nil {
		return "", nil
	}
	str, ok := raw.(string)
	if !ok {
		str = fmt.Sprint(raw)
	}
	expanded, err := ExpandTemplate(str, &InputContext{Inputs: r.Inputs})
	if err != nil {
		return "", fmt.Errorf("expanding config %q: %w", key, err)
	}
	return expanded, nil
}

// BuildFunc turns a parsed command into the action to run on the next tick.
type BuildFunc func(ctx context.Context, req *Request) (game.Action, error)

// HandlerFactory creates BuildFuncs from command configurations.
// Implementations should expose their expected config structure.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a BuildFunc from the validated config.
	Create(config map[string]any) (BuildFunc, error)
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	keyword string
	def     *Definition
	build   BuildFunc
}

// Handler maps keywords to compiled commands.
type Handler struct {
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand

	saveDir string
	archive Archive
}

// NewHandler creates a Handler with the built-in handler factories. Others
// are added with RegisterFactory.
func NewHandler(opts ...HandlerOpt) *Handler {
	h := &Handler{
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
	}
	for _, opt := range opts {
		opt(h)
	}
	for name, f := range map[string]HandlerFactory{
		"message":         &MessageHandlerFactory{},
		"quit":            &QuitHandlerFactory{},
		"look":            &LookHandlerFactory{},
		"move":            &MoveHandlerFactory{},
		"store":           &StoreHandlerFactory{},
		"add_exit":        &AddExitHandlerFactory{},
		"dig":             &DigHandlerFactory{},
		"rename_room":     &RenameRoomHandlerFactory{},
		"redescribe_room": &RedescribeRoomHandlerFactory{},
		"empty_world":     &EmptyWorldHandlerFactory{},
		"save":            &SaveHandlerFactory{Dir: h.saveDir},
		"load":            &LoadHandlerFactory{Dir: h.saveDir},
		"help":            &HelpHandlerFactory{handler: h},
	} {
		h.factories[name] = f
	}
	if h.archive != nil {
		h.factories["archive"] = NewArchiveHandlerFactory(h.archive)
		h.factories["restore"] = NewRestoreHandlerFactory(h.archive)
	}
	return h
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// Register compiles def and makes it available under keyword.
func (h *Handler) Register(keyword string, def *Definition) error {
	if strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("command keyword cannot be empty")
	}
	if strings.ContainsAny(keyword, " \t") {
		return fmt.Errorf("command keyword %q cannot contain whitespace", keyword)
	}
	key := foldKeyword(keyword)
	if _, exists := h.compiled[key]; exists {
		return fmt.Errorf("command %q already registered", keyword)
	}

	if err := def.Validate(); err != nil {
		return fmt.Errorf("command %q: %w", keyword, err)
	}

	factory, ok := h.factories[def.Handler]
	if !ok {
		return fmt.Errorf("command %q: unknown handler %q", keyword, def.Handler)
	}
	if err := factory.ValidateConfig(def.Config); err != nil {
		return fmt.Errorf("command %q: validating config: %w", keyword, err)
	}
	build, err := factory.Create(def.Config)
	if err != nil {
		return fmt.Errorf("command %q: creating handler: %w", keyword, err)
	}

	h.compiled[key] = &compiledCommand{
		keyword: keyword,
		def:     def,
		build:   build,
	}
	return nil
}

// RegisterAll registers every definition, reporting all failures together.
func (h *Handler) RegisterAll(defs map[string]*Definition) error {
	el := errors.NewErrorList()
	for _, keyword := range slices.Sorted(maps.Keys(defs)) {
		el.Add(h.Register(keyword, defs[keyword]))
	}
	return el.Err()
}

// Keywords returns the registered keywords in sorted order.
func (h *Handler) Keywords() []string {
	keywords := make([]string, 0, len(h.compiled))
	for _, c := range h.compiled {
		keywords = append(keywords, c.keyword)
	}
	slices.Sort(keywords)
	return keywords
}

// Definition returns the definition registered under keyword.
func (h *Handler) Definition(keyword string) (*Definition, bool) {
	c, ok := h.compiled[foldKeyword(keyword)]
	if !ok {
		return nil, false
	}
	return c.def, true
}

// Invocation is a parsed command line, ready to be built against a game.
type Invocation struct {
	cmd    *compiledCommand
	inputs map[string]any
}

// Keyword returns the keyword the command was registered under.
func (i *Invocation) Keyword() string {
	return i.cmd.keyword
}

// Parse resolves the command on line and gathers its inputs. Inputs that are
// not on the line are asked on term, so Parse may block on the user; it never
// touches game state. A blank line yields a nil Invocation.
func (h *Handler) Parse(term *internal.Terminal, line string) (*Invocation, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return nil, nil
	}

	cmd, ok := h.compiled[foldKeyword(tokens[0])]
	if !ok {
		return nil, userErrorf("Could not find command '%s'", tokens[0])
	}

	inputs, err := parseInputs(term, cmd.def.Inputs, tokens[1:])
	if err != nil {
		return nil, err
	}

	return &Invocation{cmd: cmd, inputs: inputs}, nil
}

// Build creates the action to schedule for the invocation.
func (i *Invocation) Build(ctx context.Context, g *game.Ingame) (game.Action, error) {
	return i.cmd.build(ctx, &Request{
		Ingame: g,
		Inputs: i.inputs,
		config: i.cmd.def.Config,
	})
}

// foldKeyword normalizes a keyword for case-insensitive lookup. A Caser is
// stateful, so each call gets its own.
func foldKeyword(s string) string {
	return cases.Fold().String(s)
}

// Tokenize splits a command line into words.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// parseInputs validates raw string arguments against input specs.
func parseInputs(term *internal.Terminal, specs []InputSpec, rawArgs []string) (map[string]any, error) {
	var lineSpecs []*InputSpec
	for i := range specs {
		if !specs[i].interactive() {
			lineSpecs = append(lineSpecs, &specs[i])
		}
	}

	hasRest := len(lineSpecs) > 0 && lineSpecs[len(lineSpecs)-1].Rest
	if !hasRest && len(rawArgs) > len(lineSpecs) {
		return nil, userErrorf("Expected at most %d argument(s), got %d", len(lineSpecs), len(rawArgs))
	}

	inputs := make(map[string]any, len(specs))
	argIndex := 0

	for i := range specs {
		spec := &specs[i]

		if spec.interactive() {
			value, err := readInteractive(term, spec)
			if err != nil {
				return nil, err
			}
			inputs[spec.Name] = value
			continue
		}

		var raw string
		switch {
		case argIndex < len(rawArgs) && spec.Rest:
			// Consume all remaining args joined with spaces
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		case argIndex < len(rawArgs):
			raw = rawArgs[argIndex]
			argIndex++
		case spec.Prompt != "" && term != nil:
			word, err := term.InputWord(spec.Prompt)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", spec.Name, err)
			}
			raw = word
		case spec.Required:
			return nil, userErrorf("Missing required parameter: %s", spec.Name)
		default:
			inputs[spec.Name] = zeroValue(spec.Type)
			continue
		}

		value, err := parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}
		inputs[spec.Name] = value
	}

	return inputs, nil
}

func readInteractive(term *internal.Terminal, spec *InputSpec) (any, error) {
	if term == nil {
		return nil, userErrorf("%s needs an interactive terminal", spec.Name)
	}

	switch spec.Type {
	case InputTypeLines:
		prompt := spec.Prompt
		if prompt == "" {
			prompt = fmt.Sprintf("Enter %s, finish with %s on its own line:\n", spec.Name, LinesTerminator)
		}
		text, err := term.MultilineInput(prompt, LinesTerminator)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", spec.Name, err)
		}
		return text, nil

	case InputTypeConfirm:
		prompt := spec.Prompt
		if prompt == "" {
			prompt = "Are you sure? "
		}
		ok, err := term.PromptYN(prompt)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", spec.Name, err)
		}
		return ok, nil

	default:
		return nil, fmt.Errorf("input %q is not interactive", spec.Name)
	}
}

func zeroValue(inputType InputType) any {
	if inputType == InputTypeNumber {
		return 0
	}
	return ""
}

// parseValue parses a raw string into the appropriate type.
func parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, userErrorf("%q is not a valid number.", raw)
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown parameter type %q", inputType)
	}
}
