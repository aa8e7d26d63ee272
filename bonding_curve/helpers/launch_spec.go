package helpers

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpad-go/bonding_curve/shared"
	"github.com/tidwall/gjson"
)

// LaunchSpec is a pool launch described by a JSON manifest.
type LaunchSpec struct {
	MemeMint  solanago.PublicKey
	QuoteMint solanago.PublicKey
	Creator   solanago.PublicKey
	Fees      shared.Fees
	Config    shared.Config
}

// ParseLaunchSpec reads a manifest such as
//
//	{
//	  "memeMint": "...", "quoteMint": "...", "creator": "...",
//	  "fees":   {"memeBps": 0, "quoteBps": 100},
//	  "curve":  {"alphaAbs": 1000000, "beta": 1000000000, "priceFactorNum": 1, "priceFactorDenom": 10,
//	             "gammaS": 1000000000000, "gammaM": 3000000000000, "omegaM": 2400000000000},
//	  "decimals": {"meme": 6, "quote": 9}
//	}
//
// quoteMint defaults to wrapped SOL and omegaM to 80% of gammaM.
func ParseLaunchSpec(data []byte) (*LaunchSpec, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: launch manifest is not valid json", shared.ErrInvalidConfig)
	}
	doc := gjson.ParseBytes(data)

	memeMint, err := publicKeyField(doc, "memeMint", true)
	if err != nil {
		return nil, err
	}
	quoteMint, err := publicKeyField(doc, "quoteMint", false)
	if err != nil {
		return nil, err
	}
	if quoteMint.IsZero() {
		quoteMint = WrappedSolMint
	}
	creator, err := publicKeyField(doc, "creator", false)
	if err != nil {
		return nil, err
	}

	memeScale, err := scaleField(doc, "decimals.meme", DefaultMemeDecimals)
	if err != nil {
		return nil, err
	}
	quoteScale, err := scaleField(doc, "decimals.quote", DefaultQuoteDecimals)
	if err != nil {
		return nil, err
	}

	curve := doc.Get("curve")
	if !curve.Exists() {
		return nil, fmt.Errorf("%w: launch manifest has no curve", shared.ErrInvalidConfig)
	}
	config := shared.Config{
		AlphaAbs:         curve.Get("alphaAbs").Uint(),
		Beta:             curve.Get("beta").Uint(),
		PriceFactorNum:   curve.Get("priceFactorNum").Uint(),
		PriceFactorDenom: curve.Get("priceFactorDenom").Uint(),
		GammaS:           curve.Get("gammaS").Uint(),
		GammaM:           curve.Get("gammaM").Uint(),
		OmegaM:           curve.Get("omegaM").Uint(),
		Decimals: shared.Decimals{
			Alpha: memeScale,
			Beta:  quoteScale,
			Quote: quoteScale,
		},
	}
	if config.PriceFactorNum == 0 && !curve.Get("priceFactorNum").Exists() {
		config.PriceFactorNum = 1
	}
	if config.PriceFactorDenom == 0 && !curve.Get("priceFactorDenom").Exists() {
		config.PriceFactorDenom = 1
	}
	if !curve.Get("omegaM").Exists() {
		config.OmegaM = DefaultMigrationThreshold(config.GammaM)
	}

	fees := shared.Fees{
		FeeMemePercent:  bpsField(doc, "fees.memeBps"),
		FeeQuotePercent: bpsField(doc, "fees.quoteBps"),
	}

	if err := ValidateMints(memeMint, quoteMint); err != nil {
		return nil, err
	}
	if err := ValidateFees(fees); err != nil {
		return nil, err
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	return &LaunchSpec{
		MemeMint:  memeMint,
		QuoteMint: quoteMint,
		Creator:   creator,
		Fees:      fees,
		Config:    config,
	}, nil
}

func publicKeyField(doc gjson.Result, path string, required bool) (solanago.PublicKey, error) {
	v := doc.Get(path)
	if !v.Exists() || v.String() == "" {
		if required {
			return solanago.PublicKey{}, fmt.Errorf("%w: launch manifest missing %s", shared.ErrInvalidConfig, path)
		}
		return solanago.PublicKey{}, nil
	}
	key, err := solanago.PublicKeyFromBase58(v.String())
	if err != nil {
		return solanago.PublicKey{}, fmt.Errorf("%w: %s: %v", shared.ErrInvalidConfig, path, err)
	}
	return key, nil
}

// scaleField reads a decimals count and turns it into its power of ten scale.
func scaleField(doc gjson.Result, path string, fallback uint8) (uint64, error) {
	v := doc.Get(path)
	if !v.Exists() {
		return ScaleFromDecimals(fallback)
	}
	if v.Type != gjson.Number || v.Num < 0 || v.Num > MaxDecimals || v.Num != float64(v.Uint()) {
		return 0, fmt.Errorf("%w: %s must be an integer in [0, %d], got %s", shared.ErrInvalidConfig, path, MaxDecimals, v.Raw)
	}
	scale, err := ScaleFromDecimals(uint8(v.Uint()))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return scale, nil
}

func bpsField(doc gjson.Result, path string) uint64 {
	return doc.Get(path).Uint() * (shared.FeePrecision / shared.MaxBasisPoint)
}
