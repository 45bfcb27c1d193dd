package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID returns a 27 character, time-sortable unique id.
func NewKSUID() string {
	return ksuid.New().String()
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewSnowflakeID returns an id from the process-wide node numbered by
// SNOWFLAKE_NODE (default 1). A bad node number falls back to KSUIDs.
func NewSnowflakeID() string {
	nodeOnce.Do(func() {
		n := int64(1)
		if v, err := strconv.ParseInt(os.Getenv("SNOWFLAKE_NODE"), 10, 64); err == nil {
			n = v
		}
		node, _ = snowflake.NewNode(n)
	})
	if node == nil {
		return NewKSUID()
	}
	return node.Generate().String()
}
