package types

type Constraint struct {
	Op      ConstraintOp
	Version string
}
