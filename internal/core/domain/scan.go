package domain

// DefaultChunkSize is the number of curves processed per chunk of an all-curves scan.
const DefaultChunkSize = 50

// Progress reports how far an all-curves scan has advanced.
type Progress struct {
	BatchIndex   int `json:"batch_index"`
	TotalBatches int `json:"total_batches"`
	Done         int `json:"curves_done"`
	Total        int `json:"curves_total"`
}

// Fraction returns the share of curves processed, in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// ScanEntry is the elastic-model fit of one curve in a scan.
type ScanEntry struct {
	CurveID int       `json:"curve_id"`
	Model   string    `json:"model"`
	Params  []float64 `json:"params"`
	R2      float64   `json:"r2"`
}

// ScanChunk is emitted after every processed chunk of a scan.
type ScanChunk struct {
	Progress Progress    `json:"progress"`
	Entries  []ScanEntry `json:"entries"`
}

// ScanRequest asks for elastic-model parameters over every curve in the store.
type ScanRequest struct {
	Filters           Filters             `json:"filters"`
	MetadataOverrides *MetadataOverrides  `json:"metadata_overrides,omitempty"`
	ZeroForce         *bool               `json:"zero_force,omitempty"`
	Elasticity        *ElasticitySettings `json:"elasticity,omitempty"`
	ChunkSize         int                 `json:"chunk_size,omitempty" validate:"gte=0"`
}

// Batch returns the per-chunk processing request for the given curve ids.
func (s *ScanRequest) Batch(ids []int) Request {
	return Request{
		CurveIDs:          ids,
		Filters:           s.Filters,
		MetadataOverrides: s.MetadataOverrides,
		ZeroForce:         s.ZeroForce,
		Elasticity:        s.Elasticity,
	}
}
