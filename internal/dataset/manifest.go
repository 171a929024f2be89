package dataset

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Dataset names used by the analysis agents.
const (
	ClinicalTrials = "clinical_trials"
	IQVIAMarket    = "iqvia_market"
	Patents        = "patents"
	EXIMTrade      = "exim_trade"
)

// Source describes one tabular dataset: its file (CSV or XLSX, relative to
// the data directory) and the columns the agents expect.
type Source struct {
	File    string   `yaml:"file"`
	Columns []string `yaml:"columns"`
}

// Manifest maps dataset names to their sources.
type Manifest map[string]Source

// DefaultManifest covers the four shipped datasets.
func DefaultManifest() Manifest {
	return Manifest{
		ClinicalTrials: {
			File:    "clinical_trials.csv",
			Columns: []string{"disease", "molecule", "phase", "sponsor"},
		},
		IQVIAMarket: {
			File:    "iqvia_market.csv",
			Columns: []string{"country", "disease", "market_size_usd_mn", "cagr_percent", "company"},
		},
		Patents: {
			File:    "patents.csv",
			Columns: []string{"molecule", "jurisdiction", "status", "assignee"},
		},
		EXIMTrade: {
			File:    "exim_trade.csv",
			Columns: []string{"country", "trade_value_usd_mn", "partner_country"},
		},
	}
}

// LoadManifest reads a dataset manifest from a YAML file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "manifest: read %s", path)
	}

	// The YAML has a top-level "datasets" key.
	var wrapper struct {
		Datasets Manifest `yaml:"datasets"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "manifest: parse")
	}
	if len(wrapper.Datasets) == 0 {
		return nil, eris.New("manifest: no datasets defined")
	}

	return wrapper.Datasets, nil
}
