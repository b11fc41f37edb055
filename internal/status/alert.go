package status

import (
	"github.com/banshee-data/velocity.hud/internal/overlay"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
)

// Alert is the onroad banner.
type Alert struct {
	Text1      string
	Text2      string
	Size       snapshot.AlertSize
	Status     snapshot.AlertStatus
	Background overlay.Color
}

// Visible reports whether a banner is drawn.
func (a Alert) Visible() bool { return a.Size != snapshot.AlertNone }

var (
	alertWaiting = Alert{
		Text1:  "Driver Assist Unavailable",
		Text2:  "Waiting for controls to start",
		Size:   snapshot.AlertMid,
		Status: snapshot.AlertNormal,
	}
	alertUnresponsive = Alert{
		Text1:  "TAKE CONTROL IMMEDIATELY",
		Text2:  "Controls Unresponsive",
		Size:   snapshot.AlertFull,
		Status: snapshot.AlertCritical,
	}
)

// AlertOf derives the banner. Controls that have not reported since the
// session began show a waiting banner until timeoutFrames have passed, then
// a critical one; controls that report and then go quiet for timeoutFrames
// are treated the same way.
func AlertOf(s *snapshot.Snapshot, g snapshot.Guard, timeoutFrames uint64) Alert {
	var a Alert
	switch {
	case s == nil:
		return Alert{}
	case !g.Fresh(s, snapshot.ControlsState):
		if g.Age(s) > timeoutFrames {
			a = alertUnresponsive
		} else {
			a = alertWaiting
		}
	case s.Frame > s.Controls.RecvFrame+timeoutFrames:
		a = alertUnresponsive
	default:
		ctl := s.Controls
		if ctl.AlertSize == snapshot.AlertNone || (ctl.AlertText1 == "" && ctl.AlertText2 == "") {
			return Alert{}
		}
		a = Alert{Text1: ctl.AlertText1, Text2: ctl.AlertText2, Size: ctl.AlertSize, Status: ctl.AlertStatus}
	}
	a.Background = alertBackground(a.Status)
	return a
}

func alertBackground(st snapshot.AlertStatus) overlay.Color {
	switch st {
	case snapshot.AlertUserPrompt:
		return overlay.AlertUserPrompt
	case snapshot.AlertCritical:
		return overlay.AlertCritical
	}
	return overlay.AlertNormal
}
