package ports

import "buildgate/internal/types"

type PlanWriterPort interface {
	WritePlan(dir string, plan types.BuildPlan) error
	WriteFeaturesLock(dir string, gates []types.FeatureGate, plan types.BuildPlan) error
	WriteReport(dir string, records []types.RuleRecord) error
}

type OutputReaderPort interface {
	ReadPlan(path string) (types.BuildPlan, error)
	ReadFeaturesLock(path string) ([]types.FeatureLockEntry, error)
	ReadReport(path string) ([]types.RuleRecord, error)
}
