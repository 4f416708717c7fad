package appServer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ds124wfegd/hotel-backoffice/pkg/queue"
)

// TestInitQueueUnreachableRedis тестирует деградацию без очереди: при ошибке
// подключения интерфейсы остаются честными nil, и проверки вида
// `if redisQueue != nil` не пропускают типизированный nil указатель
func TestInitQueueUnreachableRedis(t *testing.T) {
	cfg := queue.DefaultRedisQueueConfig()
	cfg.Addr = "127.0.0.1:1"

	q, publisher := initQueue(cfg, queue.NewRetryManager(1, time.Millisecond), nil)

	assert.True(t, q == nil, "очередь должна быть nil интерфейсом, получено %#v", q)
	assert.True(t, publisher == nil, "издатель должен быть nil интерфейсом, получено %#v", publisher)
}
