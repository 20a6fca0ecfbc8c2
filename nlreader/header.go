package nlreader

import "fmt"

// MaxOptions is the largest option count a header may declare. Writers of
// the format never emit more than nine; a count of ten is rejected.
const MaxOptions = 9

// Option positions with a fixed meaning.
const (
	// vbtolOption holds readVBTol when the header carries an extra
	// variable-bound tolerance after the options.
	vbtolOption = 1
	readVBTol   = 3
)

// Format is the encoding announced by the first byte of the stream.
type Format byte

const (
	FormatText   Format = 'g'
	FormatBinary Format = 'b'
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return fmt.Sprintf("Format(%q)", byte(f))
	}
}

// MarshalText renders the format by name, so YAML and JSON output stay
// readable.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Header is the problem shape declared at the start of an .nl stream.
// Optional fields absent from the input are zero.
type Header struct {
	Format     Format          `yaml:"format" json:"format"`
	NumOptions int             `yaml:"num_options" json:"num_options"`
	Options    [MaxOptions]int `yaml:"options,flow" json:"options"`
	// AMPLVBTol is present only when Options[1] == 3.
	AMPLVBTol float64 `yaml:"ampl_vbtol" json:"ampl_vbtol"`

	NumVars          int `yaml:"num_vars" json:"num_vars"`
	NumAlgebraicCons int `yaml:"num_algebraic_cons" json:"num_algebraic_cons"`
	NumObjs          int `yaml:"num_objs" json:"num_objs"`
	NumRanges        int `yaml:"num_ranges" json:"num_ranges"`
	NumEqns          int `yaml:"num_eqns" json:"num_eqns"`
	NumLogicalCons   int `yaml:"num_logical_cons" json:"num_logical_cons"`

	NumNLCons int `yaml:"num_nl_cons" json:"num_nl_cons"`
	NumNLObjs int `yaml:"num_nl_objs" json:"num_nl_objs"`

	NumComplConds        int `yaml:"num_compl_conds" json:"num_compl_conds"`
	NumNLComplConds      int `yaml:"num_nl_compl_conds" json:"num_nl_compl_conds"`
	NumComplDblIneqs     int `yaml:"num_compl_dbl_ineqs" json:"num_compl_dbl_ineqs"`
	NumComplVarsWithNZLB int `yaml:"num_compl_vars_with_nz_lb" json:"num_compl_vars_with_nz_lb"`

	NumNLNetCons     int `yaml:"num_nl_net_cons" json:"num_nl_net_cons"`
	NumLinearNetCons int `yaml:"num_linear_net_cons" json:"num_linear_net_cons"`

	NumNLVarsInCons int `yaml:"num_nl_vars_in_cons" json:"num_nl_vars_in_cons"`
	NumNLVarsInObjs int `yaml:"num_nl_vars_in_objs" json:"num_nl_vars_in_objs"`
	NumNLVarsInBoth int `yaml:"num_nl_vars_in_both" json:"num_nl_vars_in_both"`

	NumLinearNetVars int `yaml:"num_linear_net_vars" json:"num_linear_net_vars"`
	NumFuncs         int `yaml:"num_funcs" json:"num_funcs"`
	ArithKind        int `yaml:"arith_kind" json:"arith_kind"`
	Flags            int `yaml:"flags" json:"flags"`

	NumLinearBinaryVars    int `yaml:"num_linear_binary_vars" json:"num_linear_binary_vars"`
	NumLinearIntegerVars   int `yaml:"num_linear_integer_vars" json:"num_linear_integer_vars"`
	NumNLIntegerVarsInBoth int `yaml:"num_nl_integer_vars_in_both" json:"num_nl_integer_vars_in_both"`
	NumNLIntegerVarsInCons int `yaml:"num_nl_integer_vars_in_cons" json:"num_nl_integer_vars_in_cons"`
	NumNLIntegerVarsInObjs int `yaml:"num_nl_integer_vars_in_objs" json:"num_nl_integer_vars_in_objs"`

	NumConNonzeros int `yaml:"num_con_nonzeros" json:"num_con_nonzeros"`
	NumObjNonzeros int `yaml:"num_obj_nonzeros" json:"num_obj_nonzeros"`

	MaxConNameLen int `yaml:"max_con_name_len" json:"max_con_name_len"`
	MaxVarNameLen int `yaml:"max_var_name_len" json:"max_var_name_len"`

	NumCommonExprsInBoth       int `yaml:"num_common_exprs_in_both" json:"num_common_exprs_in_both"`
	NumCommonExprsInCons       int `yaml:"num_common_exprs_in_cons" json:"num_common_exprs_in_cons"`
	NumCommonExprsInObjs       int `yaml:"num_common_exprs_in_objs" json:"num_common_exprs_in_objs"`
	NumCommonExprsInSingleCons int `yaml:"num_common_exprs_in_single_cons" json:"num_common_exprs_in_single_cons"`
	NumCommonExprsInSingleObjs int `yaml:"num_common_exprs_in_single_objs" json:"num_common_exprs_in_single_objs"`
}

// OptionValues returns the declared options in order.
func (h Header) OptionValues() []int {
	return h.Options[:h.NumOptions]
}

// NumCommonExprs is the total number of defined variables across all five
// categories.
func (h Header) NumCommonExprs() int {
	return h.NumCommonExprsInBoth + h.NumCommonExprsInCons + h.NumCommonExprsInObjs +
		h.NumCommonExprsInSingleCons + h.NumCommonExprsInSingleObjs
}

// NumIntegerVars counts every integer or binary variable.
func (h Header) NumIntegerVars() int {
	return h.NumLinearBinaryVars + h.NumLinearIntegerVars + h.NumNLIntegerVarsInBoth +
		h.NumNLIntegerVarsInCons + h.NumNLIntegerVarsInObjs
}

// headerLine lists the fields of one header line in order. Optional fields
// are read only while more integers remain on the line.
type headerLine struct {
	required []*int
	optional []*int
}

// layout returns lines 2-10 of the header bound to the fields of h.
func (h *Header) layout() []headerLine {
	return []headerLine{
		{
			required: []*int{&h.NumVars, &h.NumAlgebraicCons, &h.NumObjs, &h.NumRanges, &h.NumEqns},
			optional: []*int{&h.NumLogicalCons},
		},
		{
			required: []*int{&h.NumNLCons, &h.NumNLObjs},
			optional: []*int{&h.NumComplConds, &h.NumNLComplConds, &h.NumComplDblIneqs, &h.NumComplVarsWithNZLB},
		},
		{required: []*int{&h.NumNLNetCons, &h.NumLinearNetCons}},
		{required: []*int{&h.NumNLVarsInCons, &h.NumNLVarsInObjs, &h.NumNLVarsInBoth}},
		{
			required: []*int{&h.NumLinearNetVars, &h.NumFuncs},
			optional: []*int{&h.ArithKind, &h.Flags},
		},
		{required: []*int{
			&h.NumLinearBinaryVars, &h.NumLinearIntegerVars, &h.NumNLIntegerVarsInBoth,
			&h.NumNLIntegerVarsInCons, &h.NumNLIntegerVarsInObjs,
		}},
		{required: []*int{&h.NumConNonzeros, &h.NumObjNonzeros}},
		{required: []*int{&h.MaxConNameLen, &h.MaxVarNameLen}},
		{required: []*int{
			&h.NumCommonExprsInBoth, &h.NumCommonExprsInCons, &h.NumCommonExprsInObjs,
			&h.NumCommonExprsInSingleCons, &h.NumCommonExprsInSingleObjs,
		}},
	}
}
