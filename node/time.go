package node

import (
	"fmt"
)

// SetEvalOnTimeChanged subscribes to or unsubscribes from time-change
// events. Enabling an active subscription or disabling an inactive one is
// a no-op.
func (n *Node) SetEvalOnTimeChanged(enabled bool) error {
	if n.destroyed {
		return ErrDestroyed
	}
	if enabled == n.subscribed {
		return nil
	}

	if !enabled {
		return n.unsubscribe()
	}

	if n.timeSource == nil {
		return ErrNoTimeSource
	}
	id, err := n.timeSource.Subscribe(n.onTimeChanged)
	if err != nil {
		return fmt.Errorf("failed to subscribe to time changes: %w", err)
	}
	n.subscription = id
	n.subscribed = true
	n.logger.Debug("subscribed to time changes", "callback", id)
	return nil
}

func (n *Node) unsubscribe() error {
	if !n.subscribed {
		return nil
	}
	id := n.subscription
	n.subscribed = false
	n.subscription = 0
	if err := n.timeSource.Unsubscribe(id); err != nil {
		return fmt.Errorf("failed to unsubscribe from time changes: %w", err)
	}
	n.logger.Debug("unsubscribed from time changes", "callback", id)
	return nil
}

// onTimeChanged forces a recomputation of the live outputs.
func (n *Node) onTimeChanged(seconds float64) {
	if n.destroyed {
		return
	}
	n.needsEval = true
	n.host.MarkDirty(n.affectedPlugs())
}
