package simplequery

// Kind represents the SQL operation a statement performs.
type Kind string

const (
	KindNone   Kind = ""
	KindSelect Kind = "SELECT"
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

func (k Kind) String() string {
	if k == KindNone {
		return "NONE"
	}
	return string(k)
}
