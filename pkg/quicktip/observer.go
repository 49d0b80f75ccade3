package quicktip

// Source says which rule resolved a tip.
type Source string

// Resolution sources, in priority order.
const (
	SourceTitle    Source = "title"
	SourceMarkup   Source = "markup"
	SourceRegistry Source = "registry"
)

// HideReason says why a visible tip was hidden.
type HideReason string

// Hide reasons.
const (
	HidePointerOut HideReason = "pointer-out"
	HideDismissed  HideReason = "dismissed"
	HideCancelled  HideReason = "cancelled"
	HideDisabled   HideReason = "disabled"
	HideDestroyed  HideReason = "destroyed"
)

// Observer receives dispatcher lifecycle notifications. Methods are called
// on the dispatcher's goroutine and must not call back into it.
type Observer interface {
	TipResolved(src Source)
	TipShown(src Source)
	TipHidden(reason HideReason)
	TipVetoed()
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) TipResolved(Source)   {}
func (NopObserver) TipShown(Source)      {}
func (NopObserver) TipHidden(HideReason) {}
func (NopObserver) TipVetoed()           {}

// Observers fans notifications out to several observers. Nil entries are
// skipped.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

type multiObserver []Observer

func (m multiObserver) TipResolved(src Source) {
	for _, o := range m {
		o.TipResolved(src)
	}
}

func (m multiObserver) TipShown(src Source) {
	for _, o := range m {
		o.TipShown(src)
	}
}

func (m multiObserver) TipHidden(reason HideReason) {
	for _, o := range m {
		o.TipHidden(reason)
	}
}

func (m multiObserver) TipVetoed() {
	for _, o := range m {
		o.TipVetoed()
	}
}
