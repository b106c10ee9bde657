package client

import (
	"encoding/json"
	"net/url"

	pkgerrors "github.com/pkg/errors"

	"github.com/avismetric/metric/pkg/api"
	"github.com/avismetric/metric/pkg/config"
	"github.com/avismetric/metric/pkg/conversion"
	"github.com/avismetric/metric/pkg/units"
)

func (c *Client) GetKinds() ([]units.Kind, error) {
	ret, err := c.Get("/kinds")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get kinds")
	}

	var kinds []units.Kind
	if err := json.Unmarshal([]byte(ret), &kinds); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal kinds")
	}
	return kinds, nil
}

func (c *Client) GetUnits(kind units.Kind) ([]units.Unit, error) {
	ret, err := c.Get("/kinds/" + url.PathEscape(kind.String()) + "/units")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get %s units", kind)
	}

	var list []units.Unit
	if err := json.Unmarshal([]byte(ret), &list); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal units")
	}
	return list, nil
}

func (c *Client) GetDefaults(kind units.Kind) (*units.Defaults, error) {
	ret, err := c.Get("/kinds/" + url.PathEscape(kind.String()) + "/defaults")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get %s defaults", kind)
	}

	var d units.Defaults
	if err := json.Unmarshal([]byte(ret), &d); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal defaults")
	}
	return &d, nil
}

// Convert asks the daemon to parse and convert value. Empty from or to
// use the daemon's configured defaults.
func (c *Client) Convert(kind units.Kind, value, from, to string) (*conversion.Result, error) {
	payload, err := json.Marshal(api.ConvertRequest{
		Kind:  kind.String(),
		Value: value,
		From:  from,
		To:    to,
	})
	if err != nil {
		return nil, err
	}

	ret, err := c.Post("/convert", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to convert")
	}

	var res conversion.Result
	if err := json.Unmarshal([]byte(ret), &res); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal conversion result")
	}
	return &res, nil
}

func (c *Client) GetStats() (*api.Stats, error) {
	ret, err := c.Get("/stats")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get stats")
	}

	var stats api.Stats
	if err := json.Unmarshal([]byte(ret), &stats); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal stats")
	}
	return &stats, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
