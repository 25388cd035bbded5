package media

import "fmt"

const gb = 1 << 30

// InsufficientSpaceError is returned when the output directory lacks room
// for the estimated output plus headroom
type InsufficientSpaceError struct {
	NeededGB    float64
	AvailableGB float64
	Path        string
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space: need %.2f GB, available %.2f GB, path %s",
		e.NeededGB, e.AvailableGB, e.Path)
}

// BytesToGB converts bytes to binary gigabytes
func BytesToGB(n uint64) float64 {
	return float64(n) / gb
}

// EstimateOutputSize estimates a stream copy of [start, end) from a clip of
// inputSize bytes and the given duration, with a 10% buffer. A clip with
// no known duration is assumed to be copied whole.
func EstimateOutputSize(inputSize int64, start, end, duration float64) uint64 {
	if inputSize <= 0 {
		return 0
	}
	ratio := 1.0
	if duration > 0 {
		ratio = (end - start) / duration
	}
	if ratio < 0 {
		ratio = 0
	}
	return uint64(float64(inputSize) * ratio * 1.1)
}

// checkSpace requires available to cover need plus 20%
func checkSpace(dir string, need, available uint64) error {
	required := need + need/5
	if available < required {
		return &InsufficientSpaceError{
			NeededGB:    BytesToGB(required),
			AvailableGB: BytesToGB(available),
			Path:        dir,
		}
	}
	return nil
}

// CheckDiskSpace returns an *InsufficientSpaceError if dir cannot hold
// need bytes plus headroom
func (c *Client) CheckDiskSpace(dir string, need uint64) error {
	avail, err := c.free(dir)
	if err != nil {
		c.log.WithError(err).WithField("dir", dir).Warn("free space unknown, assuming fallback")
		avail = c.cfg.FallbackFreeBytes
	}
	return checkSpace(dir, need, avail)
}
