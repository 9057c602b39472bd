package classlint

import "strings"

// Kind is the semantic role of a class name under the convention.
type Kind int

// Class kinds, derived purely from the name's prefix.
const (
	// KindUnclassified is any class carrying no convention prefix.
	KindUnclassified Kind = iota
	// KindContainer scopes a component, global element, layout, or module.
	KindContainer
	// KindModifier alters a container on the same element.
	KindModifier
	// KindPrivate is an implementation detail of a container.
	KindPrivate
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindModifier:
		return "modifier"
	case KindPrivate:
		return "private"
	}
	return "unclassified"
}

// ContainerKind is the sub-kind of a container class, derived from the
// configured prefix table.
type ContainerKind string

// Container sub-kinds.
const (
	ContainerComponent ContainerKind = "component"
	ContainerGlobal    ContainerKind = "global"
	ContainerLayout    ContainerKind = "layout"
	ContainerModule    ContainerKind = "module"
	ContainerUnknown   ContainerKind = "unknown"
)

// ClassToken is one classified class name. Classification is pure: the same
// name under the same convention always produces the same token.
type ClassToken struct {
	Name      string
	Kind      Kind
	Container ContainerKind // ContainerUnknown unless Kind is KindContainer
}

// Classify maps a class name to its token. It is total: every string maps
// to exactly one kind, with unknown prefixes falling through to
// KindUnclassified. Container prefixes win by longest match, then modifier
// prefixes, then the private prefix.
func Classify(name string, conv *Convention) ClassToken {
	tok := ClassToken{Name: name, Container: ContainerUnknown}

	matched := ""
	for prefix, kind := range conv.ContainerPrefixes {
		if strings.HasPrefix(name, prefix) && len(prefix) > len(matched) {
			matched = prefix
			tok.Container = kind
		}
	}
	if matched != "" {
		tok.Kind = KindContainer
		return tok
	}

	for _, prefix := range conv.ModifierPrefixes {
		if strings.HasPrefix(name, prefix) {
			tok.Kind = KindModifier
			return tok
		}
	}

	if conv.PrivatePrefix != "" && strings.HasPrefix(name, conv.PrivatePrefix) {
		tok.Kind = KindPrivate
		return tok
	}

	return tok
}
