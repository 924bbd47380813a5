package db

import (
	"sync"
)

// ObserverCode is referring to the type of observer notification.
type ObserverCode int

const (
	ObserveNewEpochResult ObserverCode = 0
)

// ObserverMessage is a message describing a change of a db.DB update.
type ObserverMessage struct {
	Code     ObserverCode
	Response interface{}
}

// Observer allows registering change listeners for a db.DB instance.
type Observer struct {
	channels []chan<- ObserverMessage
	lock     sync.Mutex
	closed   bool
	done     chan struct{}
	pending  sync.WaitGroup
}

// Sub subscribes the given channel to get notification, when the db.DB got
// updated.
func (obv *Observer) Sub(c chan<- ObserverMessage) {
	obv.lock.Lock()
	defer obv.lock.Unlock()
	obv.channels = append(obv.channels, c)
}

// doneChan must be called with the lock held.
func (obv *Observer) doneChan() chan struct{} {
	if obv.done == nil {
		obv.done = make(chan struct{})
	}
	return obv.done
}

// Pub publishes the given message, which is distributed over all subscribed
// channels. Messages published after Close are dropped.
func (obv *Observer) Pub(msg ObserverMessage) {
	obv.lock.Lock()
	defer obv.lock.Unlock()
	if obv.closed {
		return
	}
	done := obv.doneChan()
	for _, c := range obv.channels {
		obv.pending.Add(1)
		go obv.push(c, msg, done)
	}
}

// push is pushing a message to the given channel. The message is dropped, if
// the observer gets closed before the channel accepts it.
func (obv *Observer) push(c chan<- ObserverMessage, msg ObserverMessage, done <-chan struct{}) {
	defer obv.pending.Done()
	select {
	case c <- msg:
	case <-done:
	}
}

// Close is closing this observer. Pending messages are dropped before the
// subscribed channels are closed.
func (obv *Observer) Close() {
	obv.lock.Lock()
	defer obv.lock.Unlock()
	if obv.closed {
		return
	}
	obv.closed = true
	close(obv.doneChan())
	obv.pending.Wait()
	for _, channel := range obv.channels {
		close(channel)
	}
}
