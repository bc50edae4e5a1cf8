package eval

import (
	"bytes"
	"fmt"

	"github.com/rezfront/rezfront/internal/ast"
)

// evalIntFunction dispatches every closed-set integer-valued $ function,
// matching the reference evaluator's eval_* helper methods.
func (e *Evaluator) evalIntFunction(n *ast.IntFunction) (int64, error) {
	args := n.Args
	switch n.Kind {
	case "arrayindex":
		name, err := labelArg(args, 0)
		if err != nil {
			return 0, err
		}

		return e.evalArrayIndex(name)
	case "countof":
		name, err := labelArg(args, 0)
		if err != nil {
			return 0, err
		}

		return e.evalCountOf(name)
	case "attributes":
		return e.evalAttributes(), nil
	case "bitfield":
		start, offset, length, err := e.eval3Ints(args)
		if err != nil {
			return 0, err
		}

		return e.evalBitField(start, offset, length)
	case "byte":
		start, err := e.eval1Int(args)
		if err != nil {
			return 0, err
		}

		return e.evalBitField(start, 0, 8)
	case "word":
		start, err := e.eval1Int(args)
		if err != nil {
			return 0, err
		}

		return e.evalBitField(start, 0, 16)
	case "long":
		start, err := e.eval1Int(args)
		if err != nil {
			return 0, err
		}

		return e.evalBitField(start, 0, 32)
	case "day":
		return int64(e.Clock.Day()), nil
	case "hour":
		return int64(e.Clock.Hour()), nil
	case "id":
		if e.CurrentResource == nil {
			return 0, nil
		}

		return e.CurrentResource.ID, nil
	case "minute":
		return int64(e.Clock.Minute()), nil
	case "month":
		return int64(e.Clock.Month()), nil
	case "second":
		return int64(e.Clock.Second()), nil
	case "type":
		if e.CurrentResource == nil {
			return 0, nil
		}

		return fourCharCode(e.CurrentResource.Type), nil
	case "weekday":
		// Go's Weekday() is 0=Sunday..6=Saturday; Rez's $$Weekday is
		// 1=Sunday..7=Saturday.
		return int64(e.Clock.Weekday()) + 1, nil
	case "year":
		return int64(e.Clock.Year()), nil
	case "resourcesize":
		if e.CurrentResource == nil {
			return 0, nil
		}

		return int64(len(e.CurrentResource.Data)), nil
	case "packedsize":
		return 0, errf("$$PackedSize is not implemented")
	default:
		return 0, errf("unknown integer function %q", n.Kind)
	}
}

// evalStringFunction dispatches every closed-set string-valued $ function.
func (e *Evaluator) evalStringFunction(n *ast.StringFunction) ([]byte, error) {
	switch n.Kind {
	case "date":
		return []byte(e.Clock.Format("2006-01-02")), nil
	case "time":
		return []byte(e.Clock.Format("15:04:05")), nil
	case "version":
		return []byte(REZVersion), nil
	case "name":
		if e.CurrentResource == nil {
			return nil, nil
		}

		return e.CurrentResource.Name, nil
	case "format":
		if len(n.Args) == 0 {
			return nil, errf("$$Format requires a format string argument")
		}
		format, err := e.EvalString(n.Args[0])
		if err != nil {
			return nil, err
		}
		rest := make([]interface{}, 0, len(n.Args)-1)
		for _, a := range n.Args[1:] {
			v, err := e.Eval(a)
			if err != nil {
				return nil, err
			}
			rest = append(rest, v)
		}
		if e.Hooks.Format != nil {
			return e.Hooks.Format(format, rest)
		}

		return evalFormatDefault(format, rest)
	case "read":
		if len(n.Args) != 1 {
			return nil, errf("$$Read requires exactly one argument")
		}
		path, err := e.EvalString(n.Args[0])
		if err != nil {
			return nil, err
		}
		if e.Hooks.Read == nil {
			return nil, errf("$$Read is not implemented")
		}

		return e.Hooks.Read(path)
	case "resource":
		if len(n.Args) != 4 {
			return nil, errf("$$Resource requires exactly four arguments")
		}
		path, err := e.EvalString(n.Args[0])
		if err != nil {
			return nil, err
		}
		resTypeCode, err := e.EvalInt(n.Args[1])
		if err != nil {
			return nil, err
		}
		resType := fourCharCodeString(resTypeCode)
		id, err := e.EvalInt(n.Args[2])
		if err != nil {
			return nil, err
		}
		name, err := e.EvalString(n.Args[3])
		if err != nil {
			return nil, err
		}
		if e.Hooks.Resource == nil {
			return nil, errf("$$Resource is not implemented")
		}

		return e.Hooks.Resource(path, resType, id, name)
	case "shell":
		if len(n.Args) != 1 {
			return nil, errf("$$Shell requires exactly one argument")
		}
		name, err := e.EvalString(n.Args[0])
		if err != nil {
			return nil, err
		}
		if e.Hooks.Shell == nil {
			return nil, errf("$$Shell is not implemented")
		}

		return e.Hooks.Shell(string(name))
	default:
		return nil, errf("unknown string function %q", n.Kind)
	}
}

func (e *Evaluator) evalString(expr ast.StringExpression) ([]byte, error) {
	switch n := expr.(type) {
	case *ast.StringLiteral:
		return n.Value, nil
	case *ast.StringConcat:
		var buf bytes.Buffer
		for _, v := range n.Values {
			b, err := e.evalString(v)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}

		return buf.Bytes(), nil
	case *ast.StringFunction:
		return e.evalStringFunction(n)
	case *ast.Symbol:
		v, err := e.evalSymbol(n)
		if err != nil {
			return nil, err
		}
		s, ok := v.([]byte)
		if !ok {
			return nil, errf("symbol %q is not a string", n.Name)
		}

		return s, nil
	default:
		return nil, errf("don't know how to evaluate %T as a string", expr)
	}
}

// evalBitField reads a big-endian bit field of length bits, starting at
// bit (start+offset) of the current resource's data, sign-extending the
// result. Grounded directly on the reference's eval_bitfield.
func (e *Evaluator) evalBitField(start, offset, length int64) (int64, error) {
	if e.CurrentResource == nil {
		return 0, errf("$$BitField/$$Byte/$$Word/$$Long require a current resource")
	}

	startByte := (start + offset) / 8
	endBitTotal := start + offset + length
	endByte := endBitTotal / 8
	endBit := endBitTotal % 8

	data := e.CurrentResource.Data
	if startByte < 0 || endByte >= int64(len(data)) || endByte < startByte {
		return 0, errf("$$BitField out of range of current resource data")
	}

	var num uint64
	for _, b := range data[startByte : endByte+1] {
		num = num<<8 | uint64(b)
	}
	num >>= uint(8 - endBit)

	mask := uint64(1)<<uint(length) - 1
	num &= mask

	if num > mask/2 {
		return int64(num) - int64(mask) - 1, nil
	}

	return int64(num), nil
}

func (e *Evaluator) evalArrayIndex(name string) (int64, error) {
	st, ok := e.Arrays[name]
	if !ok {
		return 0, errf("unknown array %q", name)
	}

	return int64(st.ArrayIndex), nil
}

func (e *Evaluator) evalCountOf(name string) (int64, error) {
	st, ok := e.Arrays[name]
	if !ok {
		return 0, errf("unknown array %q", name)
	}

	return int64(st.CountOf), nil
}

func (e *Evaluator) evalAttributes() int64 {
	if e.CurrentResource == nil {
		return 0
	}

	return e.CurrentResource.Attributes
}

// ResolveAttributes computes the int64 mask a ResourceSpec's attributes
// clause contributes to a resource's packed header: AttributesExpr, when
// set, is evaluated directly; otherwise the named attribute keywords are
// OR'd together via ast.AttributeSet.
func (e *Evaluator) ResolveAttributes(spec ast.ResourceSpec) (int64, error) {
	if spec.AttributesExpr != nil {
		return e.EvalInt(spec.AttributesExpr)
	}

	set := ast.NewAttributeSet()
	for _, name := range spec.Attributes {
		set.Add(name)
	}

	return set.Mask(), nil
}

func (e *Evaluator) eval1Int(args []ast.ResourceValue) (int64, error) {
	if len(args) != 1 {
		return 0, errf("expected exactly one argument, got %d", len(args))
	}
	ie, ok := args[0].(ast.IntExpression)
	if !ok {
		return 0, errf("expected an integer argument")
	}

	return e.evalInt(ie)
}

func (e *Evaluator) eval3Ints(args []ast.ResourceValue) (a, b, c int64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, errf("expected exactly three arguments, got %d", len(args))
	}
	vals := make([]int64, 3)
	for i, arg := range args {
		ie, ok := arg.(ast.IntExpression)
		if !ok {
			return 0, 0, 0, errf("expected an integer argument")
		}
		v, err := e.evalInt(ie)
		if err != nil {
			return 0, 0, 0, err
		}
		vals[i] = v
	}

	return vals[0], vals[1], vals[2], nil
}

func labelArg(args []ast.ResourceValue, i int) (string, error) {
	if i >= len(args) {
		return "", errf("missing array-name argument")
	}
	sym, ok := args[i].(*ast.Symbol)
	if !ok {
		return "", errf("expected an array name, got %T", args[i])
	}

	return sym.Name, nil
}

// fourCharCode packs a four-character resource type string into the
// integer it evaluates to when compared against a raw OSType literal.
func fourCharCode(s string) int64 {
	b := []byte(s)
	var v int64
	for i := 0; i < 4; i++ {
		v <<= 8
		if i < len(b) {
			v |= int64(b[i])
		}
	}

	return v
}

// fourCharCodeString is fourCharCode's inverse: it unpacks an OSType
// integer (as produced by a 'abcd' char literal) back into its four bytes,
// for $$Resource's type-code argument.
func fourCharCodeString(v int64) string {
	b := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}

	return string(b)
}

// evalFormatDefault supports the minimal %d/%s/%x/%% directives when no
// host Format hook is supplied; anything else is an error rather than
// silently passed through.
func evalFormatDefault(format []byte, args []interface{}) ([]byte, error) {
	var out bytes.Buffer
	argi := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i == len(format)-1 {
			out.WriteByte(format[i])

			continue
		}
		i++
		switch format[i] {
		case '%':
			out.WriteByte('%')
		case 'd':
			if argi >= len(args) {
				return nil, errf("$$Format: not enough arguments for %%d")
			}
			v, ok := args[argi].(int64)
			if !ok {
				return nil, errf("$$Format: %%d requires an integer argument")
			}
			fmt.Fprintf(&out, "%d", v)
			argi++
		case 'x':
			if argi >= len(args) {
				return nil, errf("$$Format: not enough arguments for %%x")
			}
			v, ok := args[argi].(int64)
			if !ok {
				return nil, errf("$$Format: %%x requires an integer argument")
			}
			fmt.Fprintf(&out, "%x", v)
			argi++
		case 's':
			if argi >= len(args) {
				return nil, errf("$$Format: not enough arguments for %%s")
			}
			v, ok := args[argi].([]byte)
			if !ok {
				return nil, errf("$$Format: %%s requires a string argument")
			}
			out.Write(v)
			argi++
		default:
			return nil, errf("$$Format: unsupported directive %%%c", format[i])
		}
	}

	return out.Bytes(), nil
}
