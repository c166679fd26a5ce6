// Package notify surfaces host-visible failures the core itself can only
// log: an illegal opcode jam on either CPU, or the drive halting on a
// mechanical fault. It is a callback surface the core drives without
// knowing what, if anything, is listening; the listener here is a GTK
// modal dialog via github.com/gotk3/gotk3.
package notify

import (
	"fmt"

	"github.com/gotk3/gotk3/gtk"

	"c64/emu/log"
)

// Notifier shows modal dialogs for two failure classes the host needs to
// surface: an illegal-opcode jam, and the drive halting on a mechanical
// fault it cannot service (no image mounted, write to a protected disk,
// and so on).
type Notifier struct {
	parent   *gtk.Window
	suppress bool // once true (user closed one dialog), further jams just log
}

// New wraps parent, which may be nil if the host has no window yet (the
// dialog is then created transient-less).
func New(parent *gtk.Window) *Notifier {
	return &Notifier{parent: parent}
}

// Jam reports an illegal-opcode halt on either the main or drive CPU.
// cpuName is "main" or "drive".
func (n *Notifier) Jam(cpuName string, pc uint16, opcode uint8) {
	log.ModEmu.WarnZ("cpu jammed").String("cpu", cpuName).Hex16("pc", pc).Hex8("opcode", opcode).End()
	n.show("CPU halted", fmt.Sprintf("The %s CPU executed illegal opcode $%02x at $%04x and has halted.", cpuName, opcode, pc))
}

// DriveFault reports the drive halting on a mechanical condition it
// cannot resolve itself.
func (n *Notifier) DriveFault(reason string) {
	log.ModDrive.WarnZ("drive fault").String("reason", reason).End()
	n.show("Drive fault", reason)
}

func (n *Notifier) show(title, body string) {
	if n.suppress {
		return
	}
	dlg := gtk.MessageDialogNew(n.parent, gtk.DIALOG_MODAL, gtk.MESSAGE_ERROR, gtk.BUTTONS_OK, "%s", body)
	dlg.SetTitle(title)
	dlg.Run()
	dlg.Destroy()
}

// Suppress stops further dialogs from popping up for the remainder of the
// run; the host calls this after the user acknowledges the first one, so
// a runaway loop of jams doesn't spawn a dialog per raster frame.
func (n *Notifier) Suppress() { n.suppress = true }
