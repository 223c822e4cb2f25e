package common

import "github.com/reveil-sh/reveil/pkg/alarm"

// CreateParams is the input for alarm.create.
type CreateParams struct {
	// Deadline is the absolute wake instant in unix seconds (UTC).
	Deadline int64         `json:"deadline"`
	Repeat   *alarm.Repeat `json:"repeat,omitempty"`
	Label    string        `json:"label,omitempty"`
}

// IDParams is a common input with just an alarm id.
type IDParams struct {
	ID string `json:"id"`
}

// SetEnabledParams is the input for alarm.setEnabled.
type SetEnabledParams struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// AlarmInfo is the wire representation of a single alarm.
type AlarmInfo struct {
	ID       string        `json:"id"`
	Deadline int64         `json:"deadline"`
	Repeat   *alarm.Repeat `json:"repeat,omitempty"`
	Label    string        `json:"label,omitempty"`
	Enabled  bool          `json:"enabled"`
}

// ListResult is the response for alarm.list, ordered by deadline.
type ListResult struct {
	Alarms []AlarmInfo `json:"alarms"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// FiredNotification is the payload of the alarm.fired push notification.
type FiredNotification struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	Deadline int64  `json:"deadline"`
}

// InfoFromAlarm converts a domain alarm into its wire representation.
func InfoFromAlarm(a *alarm.Alarm) AlarmInfo {
	info := AlarmInfo{
		ID:       a.ID,
		Deadline: a.Deadline.Unix(),
		Label:    a.Label,
		Enabled:  a.Enabled,
	}
	if !a.Repeat.IsNone() {
		r := a.Repeat
		info.Repeat = &r
	}
	return info
}
