package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-gym/internal/config"
)

// Observation is the numeric vector handed to the controller.
type Observation []float64

// Encoder projects a State into an Observation.
// The strategy is chosen once per Env and never changes during an episode.
type Encoder interface {
	Encode(st State) Observation
	Size() int
	Labels() []string
}

// scale holds the divisors that turn pixel units into observation units.
type scale struct {
	x, y, vel, rot, ray float64
}

func rawScale() scale {
	return scale{x: 1, y: 1, vel: 1, rot: 1, ray: 1}
}

func normScale(r Rules, maxDistance float64) scale {
	return scale{x: r.Width, y: r.Height, vel: r.Physics.MaxVelY, rot: 90, ray: maxDistance}
}

var playerLabels = []string{"player_y", "player_y_velocity", "player_rotation"}

func (s scale) appendPlayer(dst Observation, p PlayerState) Observation {
	return append(dst, p.Y/s.y, p.VelY/s.vel, p.Rotation/s.rot)
}

// compactEncoder emits the three upcoming pipes followed by the player state.
type compactEncoder struct {
	rules Rules
	scale scale
}

func (e compactEncoder) Size() int {
	return 3*upcomingPipes + len(playerLabels)
}

func (e compactEncoder) Encode(st State) Observation {
	obs := make(Observation, 0, e.Size())
	pipes := st.Field.Upcoming(e.rules, upcomingPipes)
	for i := 0; i < upcomingPipes; i++ {
		var p Pipe
		if i < len(pipes) {
			p = pipes[i]
		}
		obs = append(obs, p.X/e.scale.x, p.GapTop/e.scale.y, p.GapBottom/e.scale.y)
	}
	return e.scale.appendPlayer(obs, st.Player)
}

func (e compactEncoder) Labels() []string {
	labels := make([]string, 0, e.Size())
	for i := 0; i < upcomingPipes; i++ {
		labels = append(labels,
			fmt.Sprintf("pipe_%d_x", i),
			fmt.Sprintf("pipe_%d_top", i),
			fmt.Sprintf("pipe_%d_bottom", i),
		)
	}
	return append(labels, playerLabels...)
}

// lidarEncoder emits ray distances followed by the player state.
type lidarEncoder struct {
	lidar     Lidar
	scale     scale
	proximity float64 // Pixels; rays closer than this are penalised
}

func (e lidarEncoder) Size() int {
	return e.lidar.Rays + len(playerLabels)
}

func (e lidarEncoder) Encode(st State) Observation {
	obs := make(Observation, e.lidar.Rays, e.Size())
	e.lidar.ScanInto(obs, st.Player, st.Field.Pipes)
	for i := range obs {
		obs[i] /= e.scale.ray
	}
	return e.scale.appendPlayer(obs, st.Player)
}

func (e lidarEncoder) Labels() []string {
	labels := make([]string, 0, e.Size())
	for i := 0; i < e.lidar.Rays; i++ {
		labels = append(labels, fmt.Sprintf("lidar_%03d", i))
	}
	return append(labels, playerLabels...)
}

// TooClose reports whether any ray in obs is inside the proximity zone.
func (e lidarEncoder) TooClose(obs Observation) bool {
	limit := e.proximity / e.scale.ray
	for _, d := range obs[:e.lidar.Rays] {
		if d < limit {
			return true
		}
	}
	return false
}

// proximitySensor is implemented by encoders that can detect near obstacles.
type proximitySensor interface {
	TooClose(obs Observation) bool
}

// NewEncoder resolves the observation strategy from configuration.
func NewEncoder(r Rules, cfg config.ObservationConfig) Encoder {
	s := rawScale()
	if cfg.Normalize {
		s = normScale(r, cfg.LidarMaxDistance)
	}
	if !cfg.UseLidar {
		return compactEncoder{rules: r, scale: s}
	}
	return lidarEncoder{
		lidar:     NewLidar(r, cfg.LidarRays, cfg.LidarMaxDistance, cfg.LidarRotLimit),
		scale:     s,
		proximity: cfg.ProximityZone,
	}
}
