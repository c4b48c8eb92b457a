// Package mindmap is the stateful front door to the layout engine.
//
// An [Engine] owns the three things that outlive a single layout pass: the
// raw input of the last successful [Engine.Load], the layout options, and
// the collapse set. Every call to [Engine.Layout] rebuilds the tree from
// the retained input and recomputes the whole geometry; loading new data
// clears the collapse set.
//
//	e := mindmap.New(text.CellMeasurer{})
//	if err := e.LoadJSON(data); err != nil {
//	    return err
//	}
//	e.Toggle(3) // collapse node 3
//	l, err := e.Layout()
//
// [Layout] is the serialization format handed to renderers, the CLI and
// the HTTP API. It contains only placed nodes.
//
// An Engine is not safe for concurrent use.
package mindmap
