package marketdata

import "time"

// AssetType is the fixed enumeration of instrument kinds the service
// reports. Unrecognized strings are rejected rather than mapped to
// AssetUnknown, so upstream schema drift surfaces immediately.
type AssetType string

const (
	AssetStock   AssetType = "STOCK"
	AssetETF     AssetType = "ETF"
	AssetOption  AssetType = "OPTION"
	AssetFuture  AssetType = "FUTURE"
	AssetIndex   AssetType = "INDEX"
	AssetForex   AssetType = "FOREX"
	AssetCrypto  AssetType = "CRYPTO"
	AssetUnknown AssetType = "UNKNOWN"
)

var assetTypes = map[string]AssetType{
	"STOCK":   AssetStock,
	"ETF":     AssetETF,
	"OPTION":  AssetOption,
	"FUTURE":  AssetFuture,
	"INDEX":   AssetIndex,
	"FOREX":   AssetForex,
	"CRYPTO":  AssetCrypto,
	"UNKNOWN": AssetUnknown,
}

// ParseAssetType decodes an assetType string into the enumeration, failing
// on values outside it.
func ParseAssetType(s string) (AssetType, error) {
	if t, ok := assetTypes[s]; ok {
		return t, nil
	}
	return "", errRule("assetType", RuleAssetType, "unrecognized asset type %q", s)
}

// StockDetails is the typed detail record for STOCK assets.
type StockDetails struct {
	Sector   *string `json:"sector,omitempty"`
	Industry *string `json:"industry,omitempty"`
}

// detailDecoder parses an asset's raw details object into a typed record.
type detailDecoder func(obj map[string]any) (any, error)

// detailDecoders maps asset types to their detail decoder. Only STOCK is
// special-cased today; types without an entry keep the raw payload. New
// typed detail records register here.
var detailDecoders = map[AssetType]detailDecoder{
	AssetStock: decodeStockDetails,
}

func decodeStockDetails(obj map[string]any) (any, error) {
	var d StockDetails
	var err error
	if d.Sector, err = optString(obj, "sector"); err != nil {
		return nil, err
	}
	if d.Industry, err = optString(obj, "industry"); err != nil {
		return nil, err
	}
	return d, nil
}

// Asset is the reference data for one instrument. Details holds a typed
// record (StockDetails for STOCK) when a decoder is registered for the
// asset's type and the payload is a JSON object; otherwise it carries the
// raw payload unchanged.
type Asset struct {
	Symbol      string            `json:"symbol"`
	Type        AssetType         `json:"asset_type"`
	Name        string            `json:"name"`
	Exchange    *string           `json:"exchange,omitempty"`
	Currency    *string           `json:"currency,omitempty"`
	Description *string           `json:"description,omitempty"`
	Status      *string           `json:"status,omitempty"`
	Identifiers map[string]string `json:"identifiers,omitempty"`
	Details     any               `json:"details,omitempty"`
	LastUpdated time.Time         `json:"last_updated"`
}

// ValidateAsset builds an Asset from a decoded JSON object, canonicalizing
// the symbol and normalizing lastUpdated to UTC.
func ValidateAsset(obj map[string]any) (Asset, error) {
	var a Asset
	var err error

	sym, err := reqString(obj, "symbol")
	if err != nil {
		return Asset{}, err
	}
	a.Symbol = NormalizeSymbol(sym)

	rawType, err := reqString(obj, "assetType")
	if err != nil {
		return Asset{}, err
	}
	if a.Type, err = ParseAssetType(rawType); err != nil {
		return Asset{}, err
	}

	if a.Name, err = reqString(obj, "name"); err != nil {
		return Asset{}, err
	}
	if a.LastUpdated, err = reqTime(obj, "lastUpdated"); err != nil {
		return Asset{}, err
	}
	if a.Exchange, err = optString(obj, "exchange"); err != nil {
		return Asset{}, err
	}
	if a.Currency, err = optString(obj, "currency"); err != nil {
		return Asset{}, err
	}
	if a.Description, err = optString(obj, "description"); err != nil {
		return Asset{}, err
	}
	if a.Status, err = optString(obj, "status"); err != nil {
		return Asset{}, err
	}

	if raw, ok := obj["identifiers"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return Asset{}, errType("identifiers", raw)
		}
		a.Identifiers = make(map[string]string, len(m))
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return Asset{}, errType("identifiers."+k, v)
			}
			a.Identifiers[k] = s
		}
	}

	if raw, ok := obj["details"]; ok && raw != nil {
		a.Details = raw
		if dobj, ok := raw.(map[string]any); ok {
			if decode, ok := detailDecoders[a.Type]; ok {
				d, err := decode(dobj)
				if err != nil {
					return Asset{}, prefix("details", err)
				}
				a.Details = d
			}
		}
	}
	return a, nil
}
