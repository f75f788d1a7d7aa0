package runid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"token-emissions-lab/internal/domain"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(kind|every config field, in declaration order)
// Returns hex-encoded hash (64 characters). Two runs share an ID
// exactly when they would produce identical series.
func ComputeRunID(kind domain.TrajectoryKind, cfg domain.Config) string {
	data := fmt.Sprintf("%s|%g|%t|%g|%g|%g|%g|%g|%d|%g|%g|%g|%d|%g|%d|%g|%g",
		kind,
		cfg.InitialCap,
		cfg.CapGrowthEnabled,
		cfg.CapGrowthRate,
		cfg.MaxCap,
		cfg.StartTVL,
		cfg.DeltaMax,
		cfg.Alpha,
		cfg.Years,
		cfg.LinearGrowthRate,
		cfg.SinGrowthRate,
		cfg.SinAmplitude,
		cfg.SinPeriodDays,
		cfg.ExpGrowthRate,
		cfg.LogisticMidpointDay,
		cfg.LogisticSteepness,
		cfg.LogisticMaxTVL,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
