package mython

type Node interface {
	Pos() Position
}

// Statement is implemented by every AST node. Execute evaluates the node
// against env and returns its value. The bool reports that a return
// statement is unwinding towards the nearest MethodBodyStmt; it is never
// used for errors.
type Statement interface {
	Node
	Execute(env *Env, exec *Execution) (Value, bool, error)
}

type NumberLiteral struct {
	Value    int64
	position Position
}

func (e *NumberLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) Pos() Position { return e.position }

type NoneLiteral struct {
	position Position
}

func (e *NoneLiteral) Pos() Position { return e.position }

type AssignStmt struct {
	Name     string
	Value    Statement
	position Position
}

func (s *AssignStmt) Pos() Position { return s.position }

// VariableExpr reads a name or a dotted path such as self.pos.x.
type VariableExpr struct {
	Path     []string
	position Position
}

func (e *VariableExpr) Pos() Position { return e.position }

type FieldAssignStmt struct {
	Object   Statement
	Field    string
	Value    Statement
	position Position
}

func (s *FieldAssignStmt) Pos() Position { return s.position }

type PrintStmt struct {
	Args     []Statement
	position Position
}

func (s *PrintStmt) Pos() Position { return s.position }

type MethodCallExpr struct {
	Object   Statement
	Method   string
	Args     []Statement
	position Position
}

func (e *MethodCallExpr) Pos() Position { return e.position }

type NewInstanceExpr struct {
	Class    *Class
	Args     []Statement
	position Position
}

func (e *NewInstanceExpr) Pos() Position { return e.position }

type StringifyExpr struct {
	Arg      Statement
	position Position
}

func (e *StringifyExpr) Pos() Position { return e.position }

type ArithmeticOp int

const (
	OpAdd ArithmeticOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op ArithmeticOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

type ArithmeticExpr struct {
	Op       ArithmeticOp
	Left     Statement
	Right    Statement
	position Position
}

func (e *ArithmeticExpr) Pos() Position { return e.position }

type CompareOp int

const (
	CmpEqual CompareOp = iota
	CmpNotEqual
	CmpLess
	CmpGreater
	CmpLessOrEqual
	CmpGreaterOrEqual
)

func (op CompareOp) String() string {
	switch op {
	case CmpEqual:
		return "=="
	case CmpNotEqual:
		return "!="
	case CmpLess:
		return "<"
	case CmpGreater:
		return ">"
	case CmpLessOrEqual:
		return "<="
	case CmpGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

type ComparisonExpr struct {
	Op       CompareOp
	Left     Statement
	Right    Statement
	position Position
}

func (e *ComparisonExpr) Pos() Position { return e.position }

type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalAnd {
		return "and"
	}
	return "or"
}

type LogicalExpr struct {
	Op       LogicalOp
	Left     Statement
	Right    Statement
	position Position
}

func (e *LogicalExpr) Pos() Position { return e.position }

type NotExpr struct {
	Arg      Statement
	position Position
}

func (e *NotExpr) Pos() Position { return e.position }

type CompoundStmt struct {
	Statements []Statement
	position   Position
}

func (s *CompoundStmt) Pos() Position { return s.position }

type ReturnStmt struct {
	Value    Statement
	position Position
}

func (s *ReturnStmt) Pos() Position { return s.position }

// MethodBodyStmt is the boundary a ReturnStmt unwinds to.
type MethodBodyStmt struct {
	Body     Statement
	position Position
}

func (s *MethodBodyStmt) Pos() Position { return s.position }

type IfElseStmt struct {
	Condition Statement
	Then      Statement
	Else      Statement
	position  Position
}

func (s *IfElseStmt) Pos() Position { return s.position }

type ClassDefStmt struct {
	Class    *Class
	position Position
}

func (s *ClassDefStmt) Pos() Position { return s.position }
