package main

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment at startup
type Config struct {
	Port               int     `envconfig:"PORT" default:"8080"`
	ObstacleFile       string  `envconfig:"OBSTACLE_FILE"`
	TreeFile           string  `envconfig:"TREE_FILE" default:"rrt_tree.json"`
	MapWidth           int     `envconfig:"MAP_WIDTH" default:"1500"`
	MapHeight          int     `envconfig:"MAP_HEIGHT" default:"1000"`
	ClearanceRadius    float64 `envconfig:"CLEARANCE_RADIUS" default:"15"`
	IntensityThreshold uint8   `envconfig:"INTENSITY_THRESHOLD" default:"250"`
	Workers            int     `envconfig:"WORKERS" default:"0"`

	StepSize            float64 `envconfig:"STEP_SIZE" default:"30"`
	MaxIter             int     `envconfig:"MAX_ITER" default:"15000"`
	MaxNode             int     `envconfig:"MAX_NODE" default:"500"`
	SampleStd           float64 `envconfig:"SAMPLE_STD" default:"500"`
	DirectConnectFactor float64 `envconfig:"DIRECT_CONNECT_FACTOR" default:"1.5"`
	RetryBound          int     `envconfig:"RETRY_BOUND" default:"10"`
	Seed                uint64  `envconfig:"SEED" default:"1"`
}

// LoadConfig processes the environment into a Config
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PlannerParams builds the default planner parameters for requests
func (c *Config) PlannerParams() Params {
	p := DefaultParams()
	p.StepSize = c.StepSize
	p.MaxIter = c.MaxIter
	p.MaxNode = c.MaxNode
	p.SampleStd = c.SampleStd
	p.DirectConnectFactor = c.DirectConnectFactor
	p.RetryBound = c.RetryBound
	p.Seed = c.Seed
	p.Workers = c.Workers
	return p
}

// InflateOptions builds the map inflation settings
func (c *Config) InflateOptions() InflateOptions {
	return InflateOptions{
		Radius:    c.ClearanceRadius,
		Threshold: c.IntensityThreshold,
		Workers:   c.Workers,
	}
}
