package mqtt

import "log"

// queuedMsg stores a serialized MQTT message for replay after reconnection.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// replayQueue is a fixed-capacity FIFO that holds messages while the broker
// is unreachable. Not safe for concurrent use — caller must synchronize.
type replayQueue struct {
	buf      []queuedMsg
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any message was dropped since last drain
}

func newReplayQueue(capacity int) *replayQueue {
	return &replayQueue{
		buf:      make([]queuedMsg, capacity),
		capacity: capacity,
	}
}

func (q *replayQueue) push(msg queuedMsg) {
	if q.count == q.capacity {
		if !q.overflow {
			log.Printf("mqtt: buffer full (%d messages), dropping oldest", q.capacity)
			q.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		q.buf[q.head] = msg
		q.head = (q.head + 1) % q.capacity
		// count stays at capacity
		return
	}
	q.buf[q.head] = msg
	q.head = (q.head + 1) % q.capacity
	q.count++
}

func (q *replayQueue) drainAll() []queuedMsg {
	if q.count == 0 {
		return nil
	}

	result := make([]queuedMsg, q.count)
	// Oldest item is at (head - count) mod capacity
	start := (q.head - q.count + q.capacity) % q.capacity
	for i := 0; i < q.count; i++ {
		result[i] = q.buf[(start+i)%q.capacity]
	}

	q.count = 0
	q.head = 0
	q.overflow = false
	return result
}

func (q *replayQueue) len() int {
	return q.count
}
