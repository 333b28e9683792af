package tabdir

import "context"

// NoSelection is the selection index when no list item is selected.
const NoSelection = -1

// MoveDown advances the selection, saturating at the last item. From
// no-selection it lands on the first item. Returns the new index.
func (d *Directory) MoveDown() int {
	n := len(d.filtered)
	if n == 0 {
		d.sel = NoSelection
		return d.sel
	}
	if d.sel < n-1 {
		d.sel++
	}
	return d.sel
}

// MoveUp retreats the selection, saturating at the first item. From
// no-selection it also lands on the first item rather than staying
// deselected; the popup always keeps a real item under the cursor once any
// arrow key has been pressed.
func (d *Directory) MoveUp() int {
	n := len(d.filtered)
	if n == 0 {
		d.sel = NoSelection
		return d.sel
	}
	if d.sel <= 0 {
		d.sel = 0
		return d.sel
	}
	d.sel--
	return d.sel
}

// Selection returns the current selection index, NoSelection when none.
func (d *Directory) Selection() int { return d.sel }

// SelectedTab returns the tab under the cursor, if any.
func (d *Directory) SelectedTab() (Tab, bool) {
	if d.sel < 0 || d.sel >= len(d.filtered) {
		return Tab{}, false
	}
	return d.filtered[d.sel], true
}

// Activate switches to the selected tab, or to the first listed tab when
// nothing is selected. No-op on an empty list.
func (d *Directory) Activate(ctx context.Context) error {
	if len(d.filtered) == 0 {
		return nil
	}
	idx := d.sel
	if idx < 0 {
		idx = 0
	}
	return d.SwitchTo(ctx, d.filtered[idx].ID)
}

// Dismiss closes the popup surface unconditionally.
func (d *Directory) Dismiss() { d.shell.Close() }
