package domain

// Param describes a function parameter. The same shape doubles as a
// structure/enum member: Name+Type+Args form the declaration, Brief and
// Desc carry the attached documentation, RefID is set when the type is
// itself a documented aggregate.
type Param struct {
	Name  string
	Type  string
	Args  string
	Desc  string
	Brief string
	RefID string
}

// ReturnValue is one symbolic return-code entry. Order is significant
// and preserved from the source.
type ReturnValue struct {
	Name string
	Desc string
}

// StructureKind tags a Structure through the two-phase pipeline.
type StructureKind int

const (
	// KindUnresolved marks a placeholder registered when a parameter
	// referenced a structure that has not been read yet. It is never
	// rendered; the resolver either replaces it or drops it.
	KindUnresolved StructureKind = iota
	KindEnum
	KindStruct
)

func (k StructureKind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	default:
		return "unresolved"
	}
}

// Structure is a documented aggregate type referenced by parameters.
type Structure struct {
	Kind        StructureKind
	Name        string
	Brief       string
	Description string
	Members     []Param
}

// Define is a preprocessor-style constant, collected at whole-document
// scope only.
type Define struct {
	Name        string
	Initializer string
	Brief       string
	Description string
}

// Page is one unit of output: a documented function, or the synthetic
// whole-document entry that carries the file-level text and the defines.
type Page struct {
	RetType    string
	Name       string
	Definition string
	ArgsString string
	Brief      string
	Detail     string
	Returns    string
	Notes      string

	Params       []Param
	Defines      []Define
	ReturnValues []ReturnValue

	// StructRefs lists the refid of every structure touched by the
	// page's parameters, deduplicated and sorted.
	StructRefs []string
}
