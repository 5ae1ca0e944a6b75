package command

import (
	"slices"
	"strings"
)

// Type is the category a command is listed under.
type Type string

// Standard command categories.
const (
	TypeInfo       Type = "INFO"
	TypeFun        Type = "FUN"
	TypeColor      Type = "COLOR"
	TypePoints     Type = "POINTS"
	TypeMisc       Type = "MISC"
	TypeModeration Type = "MOD"
	TypeAdmin      Type = "ADMIN"
	TypeOwner      Type = "OWNER"
)

// StandardTypes returns the categories a client recognizes by default.
func StandardTypes() []Type {
	return []Type{TypeInfo, TypeFun, TypeColor, TypePoints, TypeMisc, TypeModeration, TypeAdmin, TypeOwner}
}

// Definition is the declarative metadata a command is built from.
// Zero values mean "not provided" and are replaced by defaults in New.
type Definition struct {
	Name              string       `yaml:"name"`
	Aliases           []string     `yaml:"aliases"`
	Usage             string       `yaml:"usage"`
	Description       string       `yaml:"description"`
	Type              Type         `yaml:"type"`
	ClientPermissions []Permission `yaml:"client_permissions"`
	UserPermissions   []Permission `yaml:"user_permissions"`
	Examples          []string     `yaml:"examples"`
	OwnerOnly         bool         `yaml:"owner_only"`
	Disabled          bool         `yaml:"disabled"`
}

// Validate checks def against the vocabulary of host.
func Validate(host Host, def Definition) error {
	if host == nil {
		return &DefinitionError{Name: def.Name, Field: "client", Reason: "missing hosting client"}
	}

	if strings.TrimSpace(def.Name) == "" {
		return &DefinitionError{Field: "name", Reason: "name is required"}
	}
	if strings.ContainsAny(def.Name, " \t\r\n") {
		return &DefinitionError{Name: def.Name, Field: "name", Reason: "name must not contain whitespace"}
	}

	seen := make(map[string]struct{}, len(def.Aliases))
	for _, alias := range def.Aliases {
		switch {
		case strings.TrimSpace(alias) == "":
			return &DefinitionError{Name: def.Name, Field: "aliases", Reason: "empty alias"}
		case strings.ContainsAny(alias, " \t\r\n"):
			return &DefinitionError{Name: def.Name, Field: "aliases", Reason: "alias " + quote(alias) + " contains whitespace"}
		case alias == def.Name:
			return &DefinitionError{Name: def.Name, Field: "aliases", Reason: "alias " + quote(alias) + " repeats the name"}
		}
		if _, dup := seen[alias]; dup {
			return &DefinitionError{Name: def.Name, Field: "aliases", Reason: "duplicate alias " + quote(alias)}
		}
		seen[alias] = struct{}{}
	}

	if def.Type != "" && !host.HasType(def.Type) {
		return &DefinitionError{Name: def.Name, Field: "type", Reason: "unknown type " + quote(string(def.Type))}
	}

	if err := validatePermissions(host, def.Name, "client_permissions", def.ClientPermissions); err != nil {
		return err
	}
	return validatePermissions(host, def.Name, "user_permissions", def.UserPermissions)
}

func validatePermissions(host Host, name, field string, perms []Permission) error {
	for _, p := range perms {
		if !host.HasPermission(p) {
			return &DefinitionError{Name: name, Field: field, Reason: "unknown permission " + quote(string(p))}
		}
	}
	return nil
}

// normalize fills every unset field. def must already be valid.
func normalize(def Definition) Definition {
	out := Definition{
		Name:              def.Name,
		Aliases:           cloneOrEmpty(def.Aliases),
		Usage:             def.Usage,
		Description:       def.Description,
		Type:              def.Type,
		ClientPermissions: cloneOrEmpty(def.ClientPermissions),
		UserPermissions:   cloneOrEmpty(def.UserPermissions),
		Examples:          cloneOrEmpty(def.Examples),
		OwnerOnly:         def.OwnerOnly,
		Disabled:          def.Disabled,
	}
	if out.Usage == "" {
		out.Usage = out.Name
	}
	if out.Type == "" {
		out.Type = TypeMisc
	}
	// An explicitly empty list is coerced as well: a command always
	// declares what the bot needs to answer.
	if len(out.ClientPermissions) == 0 {
		out.ClientPermissions = DefaultClientPermissions()
	}
	return out
}

// clone returns a deep copy of d.
func (d Definition) clone() Definition {
	d.Aliases = cloneOrEmpty(d.Aliases)
	d.ClientPermissions = cloneOrEmpty(d.ClientPermissions)
	d.UserPermissions = cloneOrEmpty(d.UserPermissions)
	d.Examples = cloneOrEmpty(d.Examples)
	return d
}

func cloneOrEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return []T{}
	}
	return slices.Clone(s)
}

func quote(s string) string {
	return `"` + s + `"`
}
