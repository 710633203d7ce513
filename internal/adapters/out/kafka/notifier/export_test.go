package notifier

import "time"

func (n *KafkaNotifier) SetClock(now func() time.Time) { n.now = now }
