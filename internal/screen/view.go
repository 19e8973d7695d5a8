package screen

import (
	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

type SectionKind string

// The four purchase-section layouts. Exactly one applies per render.
const (
	SectionAlreadyPro SectionKind = "already_pro"
	SectionReady      SectionKind = "ready"
	SectionLoading    SectionKind = "loading"
	SectionLoadError  SectionKind = "load_error"
)

type HeroView struct {
	Icon     string `json:"icon"`
	Headline string `json:"headline"`
	Subcopy  string `json:"subcopy"`
}

type FeatureRow struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Badge is the colored transaction-state indicator next to the buy button.
type Badge struct {
	Icon  string `json:"icon"`
	Tone  string `json:"tone"`
	Label string `json:"label"`
}

type PurchaseSection struct {
	Kind           SectionKind     `json:"kind"`
	Product        *entity.Product `json:"product,omitempty"`
	ButtonDisabled bool            `json:"button_disabled"`
	ButtonBusy     bool            `json:"button_busy"`
	Badge          *Badge          `json:"badge,omitempty"`
}

type AlertsView struct {
	ShowSuccess bool   `json:"show_success"`
	ShowRestore bool   `json:"show_restore"`
	Error       string `json:"error,omitempty"`
}

// View is the full render of the upgrade screen.
type View struct {
	Hero     HeroView        `json:"hero"`
	Features []FeatureRow    `json:"features"`
	Section  PurchaseSection `json:"section"`
	Alerts   AlertsView      `json:"alerts"`
	Closed   bool            `json:"closed"`
}

// Render recomputes the view from the current store and screen state.
func (s *Screen) Render() View {
	st := s.State()
	isPro := s.store.IsProUser()
	return View{
		Hero:     renderHero(isPro),
		Features: renderFeatures(isPro),
		Section:  renderPurchaseSection(st, isPro, s.store.Products(), s.store.IsLoading(), s.store.TransactionState()),
		Alerts: AlertsView{
			ShowSuccess: st.ShowSuccessAlert,
			ShowRestore: st.ShowRestoreAlert,
			Error:       st.ErrorMessage,
		},
		Closed: st.Closed,
	}
}

func renderHero(isPro bool) HeroView {
	if isPro {
		return HeroView{
			Icon:     "checkmark.seal.fill",
			Headline: "You're a Pro",
			Subcopy:  "Every RaceDay Pro feature is unlocked on this device.",
		}
	}
	return HeroView{
		Icon:     "crown.fill",
		Headline: "Upgrade to RaceDay Pro",
		Subcopy:  "Every race, every session, no limits.",
	}
}

func renderFeatures(isPro bool) []FeatureRow {
	rows := make([]FeatureRow, 0, len(entity.ProFeatures))
	for _, f := range entity.ProFeatures {
		row := FeatureRow{
			Icon:        f.Icon,
			Title:       f.Title,
			Description: f.Description,
			Unlocked:    isPro,
		}
		if isPro {
			row.Icon = "checkmark.circle.fill"
		}
		rows = append(rows, row)
	}
	return rows
}

func renderPurchaseSection(st State, isPro bool, products []entity.Product, loading bool, tx *entity.TransactionState) PurchaseSection {
	switch {
	case isPro:
		return PurchaseSection{Kind: SectionAlreadyPro}
	case len(products) > 0:
		busy := st.IsPurchasing || loading
		p := products[0]
		return PurchaseSection{
			Kind:           SectionReady,
			Product:        &p,
			ButtonDisabled: busy,
			ButtonBusy:     busy,
			Badge:          badgeFor(tx),
		}
	case loading:
		return PurchaseSection{Kind: SectionLoading}
	default:
		return PurchaseSection{Kind: SectionLoadError}
	}
}

func badgeFor(tx *entity.TransactionState) *Badge {
	if tx == nil {
		return nil
	}
	switch tx.Phase {
	case entity.TransactionPurchased:
		return &Badge{Icon: "checkmark.circle.fill", Tone: "green", Label: "Purchased"}
	case entity.TransactionRestored:
		return &Badge{Icon: "checkmark.circle.fill", Tone: "green", Label: "Restored"}
	case entity.TransactionFailed:
		return &Badge{Icon: "xmark.circle.fill", Tone: "red", Label: "Failed"}
	case entity.TransactionPending:
		return &Badge{Icon: "clock.fill", Tone: "amber", Label: "Pending"}
	case entity.TransactionDeferred:
		return &Badge{Icon: "clock.fill", Tone: "amber", Label: "Waiting for approval"}
	default:
		return nil
	}
}
