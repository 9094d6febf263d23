package apiclient

import (
	"context"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muurk/logconsole/internal/model"
)

// Config fetches any configuration resource, routing the two resources
// with dedicated endpoints.
func (c *Client) Config(ctx context.Context, configType string) (model.Config, error) {
	switch configType {
	case model.MessageProcessorsConfig:
		return c.MessageProcessorsConfig(ctx)
	case model.URLWhiteListConfig:
		return c.URLWhitelist(ctx)
	default:
		return c.ClusterConfig(ctx, configType)
	}
}

// UpdateConfig replaces any configuration resource.
func (c *Client) UpdateConfig(ctx context.Context, configType string, cfg model.Config) (model.Config, error) {
	switch configType {
	case model.MessageProcessorsConfig:
		return c.UpdateMessageProcessorsConfig(ctx, cfg)
	case model.URLWhiteListConfig:
		return c.UpdateURLWhitelist(ctx, cfg)
	default:
		return c.UpdateClusterConfig(ctx, configType, cfg)
	}
}

// VerificationOptions configures how an update is read back
type VerificationOptions struct {
	// MaxRetries is the number of extra read-backs after the first
	MaxRetries int

	// InitialDelay is waited before the first read-back
	InitialDelay time.Duration

	// RetryDelay is the delay between read-backs
	RetryDelay time.Duration

	// UseExponentialBackoff doubles RetryDelay up to MaxRetryDelay
	UseExponentialBackoff bool
	MaxRetryDelay         time.Duration
}

// DefaultVerificationOptions returns sensible defaults for verification
func DefaultVerificationOptions() *VerificationOptions {
	return &VerificationOptions{
		MaxRetries:            3,
		InitialDelay:          200 * time.Millisecond,
		RetryDelay:            500 * time.Millisecond,
		UseExponentialBackoff: true,
		MaxRetryDelay:         5 * time.Second,
	}
}

// VerificationResult contains the results of a configuration verification
type VerificationResult struct {
	Success  bool
	Attempts int

	// Actual is the last configuration read back from the server
	Actual model.Config

	// Mismatches lists every expected field the server does not report
	Mismatches []string

	Error error
}

// Mismatches compares the fields of expected with actual. Fields present
// only in actual are ignored.
func Mismatches(expected, actual model.Config) []string {
	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		got, ok := actual[k]
		if !ok {
			out = append(out, fmt.Sprintf("%s: expected %v, missing", k, expected[k]))
			continue
		}
		if !sameJSON(expected[k], got) {
			out = append(out, fmt.Sprintf("%s: expected %v, got %v", k, expected[k], got))
		}
	}
	return out
}

// sameJSON compares values by their JSON encoding, so an int written by the
// caller matches the float64 decoded from the server.
func sameJSON(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// VerifyConfig reads configType back until it matches expected or the
// retries run out.
func (c *Client) VerifyConfig(ctx context.Context, configType string, expected model.Config, opts *VerificationOptions) *VerificationResult {
	if opts == nil {
		opts = DefaultVerificationOptions()
	}

	result := &VerificationResult{}
	if err := sleep(ctx, opts.InitialDelay); err != nil {
		result.Error = err
		return result
	}

	currentDelay := opts.RetryDelay
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		result.Attempts++

		if attempt > 0 {
			if err := sleep(ctx, currentDelay); err != nil {
				result.Error = err
				return result
			}
			if opts.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > opts.MaxRetryDelay {
					currentDelay = opts.MaxRetryDelay
				}
			}
		}

		actual, err := c.Config(ctx, configType)
		if err != nil {
			result.Error = fmt.Errorf("attempt %d: failed to read back configuration: %w", attempt+1, err)
			continue
		}

		result.Actual = actual
		result.Mismatches = Mismatches(expected, actual)
		if len(result.Mismatches) == 0 {
			result.Success = true
			result.Error = nil
			return result
		}
		result.Error = fmt.Errorf("attempt %d: %s", attempt+1, strings.Join(result.Mismatches, "; "))
	}

	result.Error = fmt.Errorf("verification failed after %d attempts: %w", result.Attempts, result.Error)
	return result
}

// UpdateAndVerify updates configType and reads it back.
func (c *Client) UpdateAndVerify(ctx context.Context, configType string, cfg model.Config, opts *VerificationOptions) *VerificationResult {
	if _, err := c.UpdateConfig(ctx, configType, cfg); err != nil {
		return &VerificationResult{Error: fmt.Errorf("update failed: %w", err)}
	}
	return c.VerifyConfig(ctx, configType, cfg, opts)
}
