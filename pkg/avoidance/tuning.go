package avoidance

// TuningParams holds the live-adjustable engine parameters, exposed through
// the dashboard API so thresholds can be tuned on a walk without restarting.
// Only positive values are applied; zero fields leave the current value.
type TuningParams struct {
	MaxDepthDistance float64 `json:"max_depth_distance"`
	MinClearDistance float64 `json:"min_clear_distance"`
	MinSafeDistance  float64 `json:"min_safe_distance"`

	BaseSmoothing      float64 `json:"base_smoothing"`
	AngleOffsetDegrees float64 `json:"angle_offset_degrees"`

	SafetyWeight    float64 `json:"safety_weight"`
	ClearanceWeight float64 `json:"clearance_weight"`
	DepthWeight     float64 `json:"depth_weight"`
	ForwardWeight   float64 `json:"forward_weight"`

	FrameInterval int `json:"frame_interval"`
}

// GetTuningParams returns the current tunable values.
func (e *Engine) GetTuningParams() TuningParams {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return TuningParams{
		MaxDepthDistance:   e.cfg.MaxDepthDistance,
		MinClearDistance:   e.cfg.MinClearDistance,
		MinSafeDistance:    e.cfg.MinSafeDistance,
		BaseSmoothing:      e.cfg.BaseSmoothing,
		AngleOffsetDegrees: e.cfg.AngleOffsetDegrees,
		SafetyWeight:       e.cfg.SafetyWeight,
		ClearanceWeight:    e.cfg.ClearanceWeight,
		DepthWeight:        e.cfg.DepthWeight,
		ForwardWeight:      e.cfg.ForwardWeight,
		FrameInterval:      e.cfg.FrameInterval,
	}
}

// SetTuningParams applies non-zero parameters and rebuilds the stateless
// pipeline stages. Distance ordering is re-validated; an invalid combination
// is rejected wholesale rather than applied mid-frame.
func (e *Engine) SetTuningParams(params TuningParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.cfg
	if params.MaxDepthDistance > 0 {
		cfg.MaxDepthDistance = params.MaxDepthDistance
	}
	if params.MinClearDistance > 0 {
		cfg.MinClearDistance = params.MinClearDistance
	}
	if params.MinSafeDistance > 0 {
		cfg.MinSafeDistance = params.MinSafeDistance
	}
	if params.BaseSmoothing > 0 {
		cfg.BaseSmoothing = params.BaseSmoothing
	}
	if params.AngleOffsetDegrees != 0 {
		cfg.AngleOffsetDegrees = params.AngleOffsetDegrees
	}
	if params.SafetyWeight > 0 {
		cfg.SafetyWeight = params.SafetyWeight
	}
	if params.ClearanceWeight > 0 {
		cfg.ClearanceWeight = params.ClearanceWeight
	}
	if params.DepthWeight > 0 {
		cfg.DepthWeight = params.DepthWeight
	}
	if params.ForwardWeight > 0 {
		cfg.ForwardWeight = params.ForwardWeight
	}
	if params.FrameInterval > 0 {
		cfg.FrameInterval = params.FrameInterval
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.analyzer = NewAnalyzer(cfg)
	e.selector = NewSelector(cfg)
	e.hazard = NewHazardGuard(cfg)
	e.classifier = NewClassifier(cfg)
	e.smoother.cfg = cfg
	return nil
}
