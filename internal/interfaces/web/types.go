package web

import (
	"fmt"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

type createOfferRequest struct {
	Type                    string  `json:"type"`
	Direction               string  `json:"direction"`
	BaseCurrencyCode        string  `json:"baseCurrencyCode"`
	CounterCurrencyCode     string  `json:"counterCurrencyCode"`
	Amount                  uint64  `json:"amount"`
	MinAmount               uint64  `json:"minAmount"`
	UseMarketBasedPrice     bool    `json:"useMarketBasedPrice"`
	MarketPriceMargin       float64 `json:"marketPriceMargin"`
	FixedPrice              string  `json:"fixedPrice"`
	TriggerPrice            int64   `json:"triggerPrice"`
	BuyerSecurityDepositPct float64 `json:"buyerSecurityDepositPct"`
	PaymentAccountId        string  `json:"paymentAccountId"`
	MakerFeeCurrency        string  `json:"makerFeeCurrency"`
}

func (r createOfferRequest) toDomain() (application.CreateOfferRequest, error) {
	offerType, err := parseOfferType(r.Type)
	if err != nil {
		return application.CreateOfferRequest{}, err
	}
	direction, err := parseDirection(r.Direction)
	if err != nil {
		return application.CreateOfferRequest{}, err
	}
	feeCurrency, err := parseFeeCurrency(r.MakerFeeCurrency)
	if err != nil {
		return application.CreateOfferRequest{}, err
	}

	return application.CreateOfferRequest{
		Type:                    offerType,
		Direction:               direction,
		BaseCurrencyCode:        r.BaseCurrencyCode,
		CounterCurrencyCode:     r.CounterCurrencyCode,
		Amount:                  r.Amount,
		MinAmount:               r.MinAmount,
		UseMarketBasedPrice:     r.UseMarketBasedPrice,
		MarketPriceMargin:       r.MarketPriceMargin,
		FixedPrice:              r.FixedPrice,
		TriggerPrice:            r.TriggerPrice,
		BuyerSecurityDepositPct: r.BuyerSecurityDepositPct,
		PaymentAccountId:        r.PaymentAccountId,
		MakerFeeCurrency:        feeCurrency,
	}, nil
}

type editOfferRequest struct {
	FixedPrice        string   `json:"fixedPrice"`
	MarketPriceMargin float64  `json:"marketPriceMargin"`
	TriggerPrice      int64    `json:"triggerPrice"`
	Activate          bool     `json:"activate"`
	EditedFields      []string `json:"editedFields"`
}

func (r editOfferRequest) toDomain(
	offerId string,
) (application.EditOfferRequest, error) {
	var mask application.EditMask
	for _, field := range r.EditedFields {
		switch field {
		case "fixedPrice":
			mask |= application.EditFixedPrice
		case "marketPriceMargin":
			mask |= application.EditMarketPriceMargin
		case "triggerPrice":
			mask |= application.EditTriggerPrice
		case "activationState":
			mask |= application.EditActivationState
		default:
			return application.EditOfferRequest{},
				fmt.Errorf("unknown edited field %s", field)
		}
	}

	return application.EditOfferRequest{
		OfferId:           offerId,
		FixedPrice:        r.FixedPrice,
		MarketPriceMargin: r.MarketPriceMargin,
		TriggerPrice:      r.TriggerPrice,
		Activate:          r.Activate,
		Mask:              mask,
	}, nil
}

type takeOfferRequest struct {
	Amount                uint64 `json:"amount"`
	TakerPaymentAccountId string `json:"takerPaymentAccountId"`
	TakerFeeCurrency      string `json:"takerFeeCurrency"`
	PeerNodeAddress       string `json:"peerNodeAddress"`
}

func (r takeOfferRequest) toDomain(
	offerId string,
) (application.TakeOfferRequest, error) {
	feeCurrency, err := parseFeeCurrency(r.TakerFeeCurrency)
	if err != nil {
		return application.TakeOfferRequest{}, err
	}

	return application.TakeOfferRequest{
		OfferId:               offerId,
		Amount:                r.Amount,
		TakerPaymentAccountId: r.TakerPaymentAccountId,
		TakerFeeCurrency:      feeCurrency,
		PeerNodeAddress:       r.PeerNodeAddress,
	}, nil
}

type tradeEventRequest struct {
	Event  string `json:"event"`
	TxId   string `json:"txId"`
	Refund bool   `json:"refund"`
	Reason string `json:"reason"`
}

func parseOfferType(offerType string) (domain.OfferType, error) {
	switch offerType {
	case "", domain.OfferTypeEscrowV1.String():
		return domain.OfferTypeEscrowV1, nil
	case domain.OfferTypeBsqSwap.String():
		return domain.OfferTypeBsqSwap, nil
	case domain.OfferTypeAtomic.String():
		return domain.OfferTypeAtomic, nil
	default:
		return 0, fmt.Errorf("unknown offer type %s", offerType)
	}
}

func parseDirection(direction string) (domain.OfferDirection, error) {
	switch direction {
	case domain.OfferDirectionBuy.String():
		return domain.OfferDirectionBuy, nil
	case domain.OfferDirectionSell.String():
		return domain.OfferDirectionSell, nil
	default:
		return 0, fmt.Errorf("unknown direction %s", direction)
	}
}

func parseFeeCurrency(feeCurrency string) (domain.FeeCurrency, error) {
	switch feeCurrency {
	case "", domain.FeeCurrencyBtc.String():
		return domain.FeeCurrencyBtc, nil
	case domain.FeeCurrencyBsq.String():
		return domain.FeeCurrencyBsq, nil
	default:
		return 0, fmt.Errorf("unknown fee currency %s", feeCurrency)
	}
}
