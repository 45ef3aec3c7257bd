package cache

const (
	DefaultBudget         int64 = 4 << 20
	DefaultRetentionFloor       = 3
	DefaultKeyPrefix            = "cache_"
)

type Config struct {
	// Budget bounds bytes in use of the whole area after a write.
	Budget int64

	// RetentionFloor is the number of newest entries eviction never touches.
	RetentionFloor int

	KeyPrefix string
}

func (c Config) withDefaults() Config {
	if c.Budget <= 0 {
		c.Budget = DefaultBudget
	}
	if c.RetentionFloor <= 0 {
		c.RetentionFloor = DefaultRetentionFloor
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}

	return c
}
