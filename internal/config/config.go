// Package config provides YAML-based configuration loading, presets and
// validation for the Flappy Bird environment.
package config

// FlappyConfig contains all configuration for the Flappy Bird environment.
type FlappyConfig struct {
	Screen      FlappyScreen      `yaml:"screen"`
	Physics     FlappyPhysics     `yaml:"physics"`
	Obstacles   FlappyObstacles   `yaml:"obstacles"`
	Player      FlappyPlayer      `yaml:"player"`
	Observation ObservationConfig `yaml:"observation"`
	Rewards     RewardConfig      `yaml:"rewards"`

	// ScoreLimit truncates the episode once the score reaches it. 0 = unbounded.
	ScoreLimit int `yaml:"score_limit"`

	// RenderMode and AudioOn are read only by front-ends.
	RenderMode string `yaml:"render_mode"`
	AudioOn    bool   `yaml:"audio_on"`
}

// FlappyScreen defines the playfield in pixels.
type FlappyScreen struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundRatio float64 `yaml:"ground_ratio"` // Ground line as a fraction of height
}

// FlappyPhysics defines per-tick physics parameters for the player.
type FlappyPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	FlapImpulse   float64 `yaml:"flap_impulse"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	FlapRotation  float64 `yaml:"flap_rotation"`
	MinRotation   float64 `yaml:"min_rotation"`
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	PipeWidth   float64 `yaml:"pipe_width"`
	PipeHeight  float64 `yaml:"pipe_height"`
	PipeSpeed   float64 `yaml:"pipe_speed"`
	PipeSpacing float64 `yaml:"pipe_spacing"`
	PipeGap     float64 `yaml:"pipe_gap"`
	MinPipeGap  float64 `yaml:"min_pipe_gap"`

	// GapOffsets are the candidate gap-top offsets added to GapBase.
	GapOffsets []float64 `yaml:"gap_offsets"`
	GapBase    float64   `yaml:"gap_base"`
}

// FlappyPlayer defines the player's geometry.
type FlappyPlayer struct {
	X               float64 `yaml:"x"`
	StartY          float64 `yaml:"start_y"`
	StartVelocity   float64 `yaml:"start_velocity"`
	StartRotation   float64 `yaml:"start_rotation"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	HitboxTolerance float64 `yaml:"hitbox_tolerance"`
}

// ObservationConfig selects the observation encoding.
type ObservationConfig struct {
	UseLidar         bool    `yaml:"use_lidar"`
	Normalize        bool    `yaml:"normalize"`
	LidarRays        int     `yaml:"lidar_rays"`
	LidarMaxDistance float64 `yaml:"lidar_max_distance"`
	LidarRotLimit    float64 `yaml:"lidar_rotation_limit"`
	ProximityZone    float64 `yaml:"proximity_zone"`
}

// RewardConfig defines the reward signal.
type RewardConfig struct {
	Alive     float64 `yaml:"alive"`
	PipePass  float64 `yaml:"pipe_pass"`
	Proximity float64 `yaml:"proximity"`
	Ceiling   float64 `yaml:"ceiling"`
	Crash     float64 `yaml:"crash"`
}

// GroundY returns the y coordinate of the ground line.
func (c FlappyConfig) GroundY() float64 {
	return c.Screen.Height * c.Screen.GroundRatio
}
