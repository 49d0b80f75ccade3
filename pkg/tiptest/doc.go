// Package tiptest provides helpers for testing code built on quicktip.
//
// Env wires a Dispatcher to an in-memory vdom.Document, a panel whose show
// and hide calls are counted, a FakeClock and a Recorder:
//
//	env := tiptest.NewEnv(vdom.Body(vdom.ID("root"),
//	    vdom.Button(vdom.ID("save"), vdom.Data("qtip", "Save")),
//	))
//	env.Move("", "save")
//	env.Advance(quicktip.DefaultShowDelay)
//	if !env.Visible() {
//	    t.Fatal("expected tip")
//	}
package tiptest
