package query

import (
	"fmt"
	"strconv"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"conferencecentral/internal/domain"
)

// declarations lists the boundary fields an AIP-160 filter may reference.
func declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(string(domain.FieldCity), filtering.TypeString),
		filtering.DeclareIdent(string(domain.FieldTopics), filtering.TypeString),
		filtering.DeclareIdent(string(domain.FieldMonth), filtering.TypeInt),
		filtering.DeclareIdent(string(domain.FieldMaxAttendees), filtering.TypeInt),
		filtering.DeclareIdent(string(domain.FieldTypeOfSession), filtering.TypeString),
		filtering.DeclareIdent(string(domain.FieldLocation), filtering.TypeString),
		filtering.DeclareIdent(string(domain.FieldDate), filtering.TypeString),
	)
}

var aipOperators = map[string]domain.Operator{
	"_==_": domain.OpEQ, "=": domain.OpEQ,
	"_!=_": domain.OpNE, "!=": domain.OpNE,
	"_<_": domain.OpLT, "<": domain.OpLT,
	"_<=_": domain.OpLTEQ, "<=": domain.OpLTEQ,
	"_>_": domain.OpGT, ">": domain.OpGT,
	"_>=_": domain.OpGTEQ, ">=": domain.OpGTEQ,
}

// ParseAIPFilter lowers an AIP-160 filter such as
//
//	city = "London" AND month > 3
//
// into boundary filter triples. Only conjunctions of field comparisons are
// supported. The result still has to go through Validate.
func ParseAIPFilter(s string) ([]domain.RawFilter, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	decls, err := declarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	filter, err := filtering.ParseFilterString(s, decls)
	if err != nil {
		return nil, domain.NewInvalidFilterError("", err.Error())
	}
	var out []domain.RawFilter
	if err := lower(filter.CheckedExpr.GetExpr(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func lower(e *expr.Expr, out *[]domain.RawFilter) error {
	if e == nil {
		return nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return domain.NewInvalidFilterError("", fmt.Sprintf("unsupported expression %T", e.ExprKind))
	}
	fn := call.CallExpr.Function
	args := call.CallExpr.Args
	if fn == "_&&_" || fn == "AND" {
		for _, a := range args {
			if err := lower(a, out); err != nil {
				return err
			}
		}
		return nil
	}
	op, ok := aipOperators[fn]
	if !ok {
		return domain.NewInvalidFilterError("", fmt.Sprintf("unsupported function %s", fn))
	}
	if len(args) != 2 {
		return domain.NewInvalidFilterError("", "comparison requires 2 arguments")
	}
	ident, ok := args[0].ExprKind.(*expr.Expr_IdentExpr)
	if !ok {
		return domain.NewInvalidFilterError("", "left side of a comparison must be a field")
	}
	value, err := constString(args[1])
	if err != nil {
		return domain.NewInvalidFilterError(ident.IdentExpr.Name, err.Error())
	}
	*out = append(*out, domain.RawFilter{
		Field:    ident.IdentExpr.Name,
		Operator: string(op),
		Value:    value,
	})
	return nil
}

func constString(e *expr.Expr) (string, error) {
	c, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("expected a constant, got %T", e.ExprKind)
	}
	switch v := c.ConstExpr.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return v.StringValue, nil
	case *expr.Constant_Int64Value:
		return strconv.FormatInt(v.Int64Value, 10), nil
	case *expr.Constant_Uint64Value:
		return strconv.FormatUint(v.Uint64Value, 10), nil
	}
	return "", fmt.Errorf("unsupported constant %T", c.ConstExpr.ConstantKind)
}
