package tokens

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Mints maps well-known token symbols to their mint addresses.
var Mints = map[string]string{
	"SOL":  "So11111111111111111111111111111111111111112",
	"USDC": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	"USDT": "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
	"RAY":  "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R",
	"ORCA": "orcaEKTdK7LKz57vaAYr9QeNsVEPfiu6QeMU1kektZE",
	"BONK": "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
	"JUP":  "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
	"PYTH": "HZ1JovNiVvGrGNiiYvEozEVgZ58xaU3RKwX8eACQBCt3",
	"WIF":  "EKpQGSJtjMFqKZ1KQanSqYXRcF8fBopzLHYxdM65Qjm",
}

// ParseAsset accepts either a known token symbol or a raw mint address and
// returns the mint address.
func ParseAsset(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("asset is required")
	}

	if mint, ok := Mints[strings.ToUpper(s)]; ok {
		return mint, nil
	}

	raw, err := base58.Decode(s)
	if err != nil || len(raw) != 32 {
		return "", fmt.Errorf("unknown token %q: not a symbol or base58 mint address", input)
	}
	return s, nil
}

// Symbol returns the known symbol for a mint address, or a truncated form of
// the address itself.
func Symbol(mint string) string {
	for sym, m := range Mints {
		if m == mint {
			return sym
		}
	}
	if len(mint) > 8 {
		return mint[:8] + "..."
	}
	return mint
}

// ValidateSigner checks that a signer identity is a well-formed public key.
// Ownership is not verified; signing happens outside this system.
func ValidateSigner(pubkey string) error {
	s := strings.TrimSpace(pubkey)
	if s == "" {
		return fmt.Errorf("signer public key is required")
	}
	if _, err := solana.PublicKeyFromBase58(s); err != nil {
		return fmt.Errorf("invalid signer public key: %w", err)
	}
	return nil
}

// displayNames holds venue labels that read poorly when emitted verbatim.
var displayNames = map[string]string{
	"raydium_clmm":   "Raydium CLMM",
	"orca_whirlpool": "Orca Whirlpool",
	"meteora_dlmm":   "Meteora DLMM",
	"lifinity_v2":    "Lifinity V2",
	"openbook":       "OpenBook",
	"goosefx":        "GooseFX",
	"stepn":          "STEPN",
}

// PlatformDisplayName formats a raw venue label for output.
func PlatformDisplayName(platform string) string {
	if platform == "" {
		return "unknown"
	}
	if pretty, ok := displayNames[strings.ToLower(platform)]; ok {
		return pretty
	}
	if platform == strings.ToLower(platform) {
		return strings.ToUpper(platform[:1]) + platform[1:]
	}
	return platform
}
