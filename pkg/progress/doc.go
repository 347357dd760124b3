// Package progress tracks nested progress indicators that one
// goroutine updates while another draws them.
//
// A Coordinator is the shared registry. Workers register indicators
// with AddSpinner and AddBar and advance them through the returned
// *Bar handles; all methods are safe for concurrent use and never
// block on drawing. A Renderer reads the registry on its own
// goroutine, started with Start, and returns once every registered
// indicator has been finished or cleared:
//
//	c := progress.New()
//	spin := c.AddSpinner("working")
//	task := progress.Start(c, progress.TeaRenderer{})
//	...
//	spin.FinishAndClear()
//	if err := task.Join(); err != nil {
//		// *PanicError if the renderer crashed
//	}
package progress
