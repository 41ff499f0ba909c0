package pongo

import (
	"reflect"
	"slices"

	"github.com/flosch/pongo2/v6"
)

// keyOrderContextKey holds the keyOrder of the data being rendered. It lives
// in the public context so included templates see it as well.
const keyOrderContextKey = "_argdoc_key_order"

// keyOrder maps a converted map (by its pointer) to the document order of its
// keys.
type keyOrder map[uintptr][]string

// forNode is pongo2's for tag with deterministic map iteration. Maps that came
// from a template.OrderedMapping are walked in document order, any other map
// with string keys in sorted order. Everything else is left to pongo2.
type forNode struct {
	key      string
	value    string
	object   pongo2.IEvaluator
	reversed bool
	sorted   bool

	body  *pongo2.NodeWrapper
	empty *pongo2.NodeWrapper
}

// forLoop backs {{ forloop.* }} inside the loop body.
type forLoop struct {
	Counter     int
	Counter0    int
	Revcounter  int
	Revcounter0 int
	First       bool
	Last        bool
	Parentloop  *forLoop
}

func (node *forNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) (forErr *pongo2.Error) {
	forCtx := pongo2.NewChildExecutionContext(ctx)

	loop := &forLoop{First: true}
	if parent, ok := forCtx.Private["forloop"].(*forLoop); ok {
		loop.Parentloop = parent
	}
	forCtx.Private["forloop"] = loop

	obj, err := node.object.Evaluate(forCtx)
	if err != nil {
		return err
	}

	step := func(idx, count int, key, value *pongo2.Value) bool {
		forCtx.Private[node.key] = key
		if value != nil && node.value != "" {
			forCtx.Private[node.value] = value
		}
		loop.Counter = idx + 1
		loop.Counter0 = idx
		loop.First = idx == 0
		loop.Last = idx+1 == count
		loop.Revcounter = count - idx
		loop.Revcounter0 = count - idx - 1

		if err := node.body.Execute(forCtx, writer); err != nil {
			forErr = err
			return false
		}
		return true
	}
	empty := func() {
		if node.empty == nil {
			return
		}
		if err := node.empty.Execute(forCtx, writer); err != nil {
			forErr = err
		}
	}

	m := reflect.ValueOf(obj.Interface())
	if m.Kind() != reflect.Map || m.Type().Key().Kind() != reflect.String {
		obj.IterateOrder(step, empty, node.reversed, node.sorted)
		return forErr
	}

	keys := node.mapKeys(ctx, m)
	if len(keys) == 0 {
		empty()
		return forErr
	}
	keyType := m.Type().Key()
	for idx, key := range keys {
		item := m.MapIndex(reflect.ValueOf(key).Convert(keyType))
		var value any
		if item.IsValid() {
			value = item.Interface()
		}
		if !step(idx, len(keys), pongo2.AsValue(key), pongo2.AsValue(value)) {
			break
		}
	}
	return forErr
}

func (node *forNode) mapKeys(ctx *pongo2.ExecutionContext, m reflect.Value) []string {
	var keys []string
	if order, ok := ctx.Public[keyOrderContextKey].(keyOrder); ok {
		keys = slices.Clone(order[m.Pointer()])
	}
	if keys == nil {
		keys = make([]string, 0, m.Len())
		for _, k := range m.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
	}

	if node.sorted {
		slices.Sort(keys)
	}
	if node.reversed {
		slices.Reverse(keys)
	}
	return keys
}

// parseFor accepts the same syntax as pongo2's own for tag:
//
//	{% for key[, value] in expr [reversed] [sorted] %} ... [{% empty %} ...] {% endfor %}
func parseFor(doc *pongo2.Parser, _ *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node := &forNode{}

	keyToken := arguments.MatchType(pongo2.TokenIdentifier)
	if keyToken == nil {
		return nil, arguments.Error("Expected a key identifier as first argument of the 'for'-tag", nil)
	}
	node.key = keyToken.Val

	if arguments.Match(pongo2.TokenSymbol, ",") != nil {
		valueToken := arguments.MatchType(pongo2.TokenIdentifier)
		if valueToken == nil {
			return nil, arguments.Error("Value name must be an identifier.", nil)
		}
		node.value = valueToken.Val
	}

	if arguments.Match(pongo2.TokenKeyword, "in") == nil {
		return nil, arguments.Error("Expected keyword 'in'.", nil)
	}

	object, err := arguments.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.object = object

	if arguments.MatchOne(pongo2.TokenIdentifier, "reversed") != nil {
		node.reversed = true
	}
	if arguments.MatchOne(pongo2.TokenIdentifier, "sorted") != nil {
		node.sorted = true
	}
	if arguments.Remaining() > 0 {
		return nil, arguments.Error("Malformed for-loop arguments.", nil)
	}

	wrapper, endargs, err := doc.WrapUntilTag("empty", "endfor")
	if err != nil {
		return nil, err
	}
	if endargs.Count() > 0 {
		return nil, endargs.Error("Arguments not allowed here.", nil)
	}
	node.body = wrapper

	if wrapper.Endtag == "empty" {
		wrapper, endargs, err = doc.WrapUntilTag("endfor")
		if err != nil {
			return nil, err
		}
		if endargs.Count() > 0 {
			return nil, endargs.Error("Arguments not allowed here.", nil)
		}
		node.empty = wrapper
	}

	return node, nil
}
