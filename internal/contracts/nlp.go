package contracts

import "strings"

// Entity is one named-entity mention
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// IsOrganization reports whether the recognizer labelled the span an organization
func (e Entity) IsOrganization() bool {
	switch strings.ToUpper(e.Label) {
	case "ORG", "ORGANIZATION":
		return true
	default:
		return false
	}
}

// Role is the coarse grammatical role of a token
type Role int

const (
	RoleOther Role = iota
	RoleNoun
	RoleVerb
	RoleConjunction // coordinating
	RoleAdposition
)

func (r Role) String() string {
	switch r {
	case RoleNoun:
		return "noun"
	case RoleVerb:
		return "verb"
	case RoleConjunction:
		return "conjunction"
	case RoleAdposition:
		return "adposition"
	default:
		return "other"
	}
}

// FunctionWord reports roles that mark a token as ordinary English rather than a ticker
func (r Role) FunctionWord() bool {
	return r == RoleVerb || r == RoleConjunction || r == RoleAdposition
}

// TaggedToken is a token with its grammatical role
type TaggedToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"` // tagger-specific tag, e.g. Penn Treebank "CC"
	Role Role   `json:"role"`
}
