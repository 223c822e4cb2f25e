package reveilcli

import (
	"context"
	"time"

	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/pkg/alarm"
)

// CreateOpts carries the optional fields of alarm.create.
type CreateOpts struct {
	Repeat *alarm.Repeat
	Label  string
}

// Create adds a new enabled alarm with the given deadline.
func (c *Client) Create(ctx context.Context, deadline time.Time, opts *CreateOpts) (*common.AlarmInfo, error) {
	if opts == nil {
		opts = &CreateOpts{}
	}
	return invoke[common.AlarmInfo](ctx, c, common.MethodCreate, &common.CreateParams{
		Deadline: deadline.Unix(),
		Repeat:   opts.Repeat,
		Label:    opts.Label,
	})
}

// Remove deletes an alarm by id.
func (c *Client) Remove(ctx context.Context, id string) error {
	_, err := invoke[common.EmptyResult](ctx, c, common.MethodRemove, &common.IDParams{ID: id})
	return err
}

// SetEnabled toggles an alarm and returns its updated state.
func (c *Client) SetEnabled(ctx context.Context, id string, enabled bool) (*common.AlarmInfo, error) {
	return invoke[common.AlarmInfo](ctx, c, common.MethodSetEnabled, &common.SetEnabledParams{
		ID:      id,
		Enabled: enabled,
	})
}

// List returns the daemon's alarm set ordered by deadline.
func (c *Client) List(ctx context.Context) (*common.ListResult, error) {
	return invoke[common.ListResult](ctx, c, common.MethodList, nil)
}

// Version returns the daemon's build information.
func (c *Client) Version(ctx context.Context) (*common.VersionResult, error) {
	return invoke[common.VersionResult](ctx, c, common.MethodVersion, nil)
}
