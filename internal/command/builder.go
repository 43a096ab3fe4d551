package command

// Builder assembles a CommandDefinition with chained setters.
//
//	def := command.New(".add").
//		Namespace(".math").
//		Description("Adds two integers").
//		Arg(command.Arg("a", command.Scalar(command.TypeInteger))).
//		Arg(command.Arg("b", command.Scalar(command.TypeInteger))).
//		Build()
type Builder struct {
	def CommandDefinition
}

// New starts a definition for the given command name.
func New(name string) *Builder {
	return &Builder{def: CommandDefinition{Name: name, Status: StatusStable}}
}

func (b *Builder) Namespace(ns string) *Builder {
	b.def.Namespace = ns
	return b
}

func (b *Builder) Description(s string) *Builder {
	b.def.Description = s
	return b
}

func (b *Builder) Hint(s string) *Builder {
	b.def.Hint = s
	return b
}

func (b *Builder) Status(s Status) *Builder {
	b.def.Status = s
	return b
}

func (b *Builder) Version(v string) *Builder {
	b.def.Version = v
	return b
}

func (b *Builder) Tags(tags ...string) *Builder {
	b.def.Tags = append(b.def.Tags, tags...)
	return b
}

func (b *Builder) Aliases(aliases ...string) *Builder {
	b.def.Aliases = append(b.def.Aliases, aliases...)
	return b
}

func (b *Builder) Permissions(perms ...string) *Builder {
	b.def.Permissions = append(b.def.Permissions, perms...)
	return b
}

func (b *Builder) Examples(examples ...string) *Builder {
	b.def.Examples = append(b.def.Examples, examples...)
	return b
}

func (b *Builder) Idempotent() *Builder {
	b.def.Idempotent = true
	return b
}

// Deprecated marks the command deprecated with a message shown in help.
func (b *Builder) Deprecated(message string) *Builder {
	b.def.Status = StatusDeprecated
	b.def.DeprecationMessage = message
	return b
}

func (b *Builder) HTTPMethod(method string) *Builder {
	b.def.HTTPMethodHint = method
	return b
}

func (b *Builder) Category(c string) *Builder {
	b.def.Category = c
	return b
}

func (b *Builder) Priority(p int) *Builder {
	b.def.Priority = p
	return b
}

func (b *Builder) Hidden() *Builder {
	b.def.Hidden = true
	return b
}

func (b *Builder) AutoHelp() *Builder {
	b.def.AutoHelp = true
	return b
}

func (b *Builder) RoutineLink(link string) *Builder {
	b.def.RoutineLink = link
	return b
}

// Arg appends an argument. Arguments bind positionally in the order added.
func (b *Builder) Arg(a *ArgBuilder) *Builder {
	b.def.Arguments = append(b.def.Arguments, a.Build())
	return b
}

// Arguments appends already built argument definitions.
func (b *Builder) Arguments(args ...ArgumentDefinition) *Builder {
	b.def.Arguments = append(b.def.Arguments, args...)
	return b
}

// Build returns the definition. The builder may keep being used; later
// changes do not affect returned definitions.
func (b *Builder) Build() CommandDefinition {
	def := b.def
	def.Arguments = append([]ArgumentDefinition(nil), b.def.Arguments...)
	def.Tags = append([]string(nil), b.def.Tags...)
	def.Aliases = append([]string(nil), b.def.Aliases...)
	def.Permissions = append([]string(nil), b.def.Permissions...)
	def.Examples = append([]string(nil), b.def.Examples...)
	return def
}

// ArgBuilder assembles an ArgumentDefinition.
type ArgBuilder struct {
	arg ArgumentDefinition
}

// Arg starts a required argument definition.
func Arg(name string, kind Kind) *ArgBuilder {
	return &ArgBuilder{arg: ArgumentDefinition{Name: name, Kind: kind}}
}

func (a *ArgBuilder) Description(s string) *ArgBuilder {
	a.arg.Description = s
	return a
}

func (a *ArgBuilder) Hint(s string) *ArgBuilder {
	a.arg.Hint = s
	return a
}

func (a *ArgBuilder) Optional() *ArgBuilder {
	a.arg.Attributes.Optional = true
	return a
}

// Default makes the argument optional with the given raw default value.
func (a *ArgBuilder) Default(raw string) *ArgBuilder {
	a.arg.Attributes.Optional = true
	a.arg.Attributes.Default = raw
	a.arg.Attributes.HasDefault = true
	return a
}

func (a *ArgBuilder) Multiple() *ArgBuilder {
	a.arg.Attributes.Multiple = true
	return a
}

func (a *ArgBuilder) Sensitive() *ArgBuilder {
	a.arg.Attributes.Sensitive = true
	return a
}

func (a *ArgBuilder) Interactive() *ArgBuilder {
	a.arg.Attributes.Interactive = true
	return a
}

func (a *ArgBuilder) Aliases(aliases ...string) *ArgBuilder {
	a.arg.Aliases = append(a.arg.Aliases, aliases...)
	return a
}

func (a *ArgBuilder) Tags(tags ...string) *ArgBuilder {
	a.arg.Tags = append(a.arg.Tags, tags...)
	return a
}

func (a *ArgBuilder) Rules(rules ...ValidationRule) *ArgBuilder {
	a.arg.ValidationRules = append(a.arg.ValidationRules, rules...)
	return a
}

func (a *ArgBuilder) Build() ArgumentDefinition {
	arg := a.arg
	arg.Aliases = append([]string(nil), a.arg.Aliases...)
	arg.Tags = append([]string(nil), a.arg.Tags...)
	arg.ValidationRules = append([]ValidationRule(nil), a.arg.ValidationRules...)
	return arg
}
