package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node, used
// for golden snapshot tests. Source positions are left out of the output
// so snapshots are stable across machines and working directories.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// simplify walks a node and produces a plain map/slice tree with a "node"
// discriminator field, suitable for json.Marshal without relying on struct
// tags on every AST type.
func simplify(n Node) interface{} {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *File:
		members := make([]interface{}, len(v.Members))
		for i, m := range v.Members {
			members[i] = simplify(m)
		}
		return obj("File", map[string]interface{}{"path": v.Path, "members": members})
	case *Undefined:
		return obj("Undefined", nil)
	case *BoolLit:
		return obj("Bool", map[string]interface{}{"value": v.Value})
	case *IntLit:
		return obj("Integer", map[string]interface{}{"value": v.Value})
	case *FloatLit:
		return obj("Float", map[string]interface{}{"value": v.Value})
	case *StringLit:
		return obj("String", map[string]interface{}{"value": v.Value})
	case *InterpString:
		exprs := make([]interface{}, len(v.Exprs))
		for i, e := range v.Exprs {
			exprs[i] = simplify(e)
		}
		return obj("InterpString", map[string]interface{}{"segments": v.Segments, "exprs": exprs})
	case *Ident:
		return obj("Ident", map[string]interface{}{"name": v.Name})
	case *Self:
		return obj("Self", nil)
	case *Super:
		return obj("Super", nil)
	case *TypeName:
		return obj("TypeName", map[string]interface{}{"name": v.Name})
	case *ParamType:
		return obj("ParamType", map[string]interface{}{"base": v.Base.Name, "elem": simplify(v.Elem)})
	case *ListLit:
		elems := make([]interface{}, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = simplify(e)
		}
		return obj("List", map[string]interface{}{"elems": elems})
	case *ObjectLit:
		members := make([]interface{}, len(v.Members))
		for i, m := range v.Members {
			members[i] = simplify(m)
		}
		var proto interface{}
		if v.Proto != nil {
			proto = simplify(v.Proto)
		}
		return obj("Object", map[string]interface{}{"proto": proto, "members": members})
	case *UnaryExpr:
		return obj("Unary", map[string]interface{}{"op": v.Op, "x": simplify(v.X)})
	case *BinaryExpr:
		return obj("Binary", map[string]interface{}{"op": v.Op, "left": simplify(v.Left), "right": simplify(v.Right)})
	case *CallExpr:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = simplify(a)
		}
		return obj("Call", map[string]interface{}{"callee": simplify(v.Callee), "args": args})
	case *GetMember:
		return obj("GetMember", map[string]interface{}{"base": simplify(v.Base), "name": v.Name})
	case *GetElement:
		return obj("GetElement", map[string]interface{}{"base": simplify(v.Base), "index": simplify(v.Index)})
	case *IfExpr:
		var els interface{}
		if v.Else != nil {
			els = simplify(v.Else)
		}
		return obj("If", map[string]interface{}{"cond": simplify(v.Cond), "then": simplify(v.Then), "else": els})
	case *LetExpr:
		return obj("Let", map[string]interface{}{"name": v.Name, "value": simplify(v.Value), "body": simplify(v.Body)})
	case *SetMember:
		return obj("SetMember", map[string]interface{}{"name": v.Name, "value": simplify(v.Value)})
	case *AppendMember:
		return obj("AppendMember", map[string]interface{}{"name": v.Name, "value": simplify(v.Value)})
	case *LazyMember:
		return obj("LazyMember", map[string]interface{}{"name": v.Name, "value": simplify(v.Value)})
	case *MakeParam:
		var ty interface{}
		if v.Type != nil {
			ty = simplify(v.Type)
		}
		return obj("MakeParam", map[string]interface{}{"name": v.Name, "type": ty, "value": simplify(v.Value), "cached": v.Cached})
	case *MakeOption:
		members := make([]interface{}, len(v.Members))
		for i, m := range v.Members {
			members[i] = simplify(m)
		}
		var ty interface{}
		if v.Type != nil {
			ty = simplify(v.Type)
		}
		return obj("MakeOption", map[string]interface{}{"name": v.Name, "type": ty, "members": members})
	case *DoMember:
		return obj("Do", map[string]interface{}{"value": simplify(v.Value)})
	case *IfMember:
		then := make([]interface{}, len(v.Then))
		for i, m := range v.Then {
			then[i] = simplify(m)
		}
		var els []interface{}
		if v.Else != nil {
			els = make([]interface{}, len(v.Else))
			for i, m := range v.Else {
				els[i] = simplify(m)
			}
		}
		return obj("IfMember", map[string]interface{}{"cond": simplify(v.Cond), "then": then, "else": els})
	case *ImportMember:
		return obj("Import", map[string]interface{}{
			"path": v.Path, "alias": v.Alias, "from": v.From, "all": v.All, "symbols": v.Symbols,
		})
	default:
		return obj(fmt.Sprintf("%T", n), map[string]interface{}{"repr": n.String()})
	}
}

func obj(kind string, fields map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"node": kind}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
