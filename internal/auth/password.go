package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/blowfish"

	"github.com/teambitewolf/news-hole/internal/constants"
)

// Password hashing errors
var (
	ErrInvalidSalt     = errors.New("invalid bcrypt salt")
	ErrInvalidRounds   = errors.New("bcrypt rounds out of range")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

const (
	// bcryptAlphabet is bcrypt's base64 alphabet, which differs from RFC 4648.
	bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	saltBytes        = 16
	encodedSaltLen   = 22
	saltPrefixLen    = 7 // "$2a$10$"
	cryptedHashBytes = 23
	maxPasswordBytes = 72
)

var (
	bcryptEncoding = base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding)
	magicCipher    = []byte("OrpheanBeholderScryDoubt")
)

// PasswordHasher salts, hashes and verifies passwords.
type PasswordHasher interface {
	// GenerateSalt returns a fresh salt carrying the cost factor rounds.
	GenerateSalt(rounds int) (string, error)
	// HashPassword hashes password with salt. The result embeds the version,
	// cost and salt, so it is self-describing.
	HashPassword(password, salt string) (string, error)
	// CheckPassword reports whether password matches hash. Malformed hashes never match.
	CheckPassword(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt ($2a$).
// Salts are produced separately from hashing so the same salt always yields
// the same hash.
type BcryptHasher struct {
	random io.Reader
}

// NewBcryptHasher creates a hasher backed by crypto/rand.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{random: rand.Reader}
}

// NewBcryptHasherWithRandom creates a hasher reading salt bytes from random.
func NewBcryptHasherWithRandom(random io.Reader) *BcryptHasher {
	return &BcryptHasher{random: random}
}

// GenerateSalt returns "$2a$<cost>$<22 chars>". Zero rounds selects the default cost.
func (h *BcryptHasher) GenerateSalt(rounds int) (string, error) {
	if rounds == 0 {
		rounds = constants.DefaultPasswordHashRounds
	}
	if rounds < bcrypt.MinCost || rounds > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: %d", ErrInvalidRounds, rounds)
	}

	raw := make([]byte, saltBytes)
	if _, err := io.ReadFull(h.random, raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	return fmt.Sprintf("$2a$%02d$%s", rounds, bcryptEncoding.EncodeToString(raw)), nil
}

// HashPassword runs the bcrypt key schedule for password with the given salt.
// A full hash may be passed as the salt; only its salt prefix is used.
func (h *BcryptHasher) HashPassword(password, salt string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	cost, rawSalt, err := parseSalt(salt)
	if err != nil {
		return "", err
	}

	cipherData := make([]byte, len(magicCipher))
	copy(cipherData, magicCipher)

	c, err := expensiveBlowfishSetup([]byte(password), cost, rawSalt)
	if err != nil {
		return "", err
	}

	for i := 0; i < len(cipherData); i += blowfish.BlockSize {
		for j := 0; j < 64; j++ {
			c.Encrypt(cipherData[i:i+blowfish.BlockSize], cipherData[i:i+blowfish.BlockSize])
		}
	}

	// Only 23 of the 24 encrypted bytes are encoded, as every bcrypt does
	encoded := bcryptEncoding.EncodeToString(cipherData[:cryptedHashBytes])

	return salt[:saltPrefixLen+encodedSaltLen] + encoded, nil
}

// CheckPassword compares in constant time via bcrypt.CompareHashAndPassword.
func (h *BcryptHasher) CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the cost factor embedded in a salt or hash.
func Cost(saltOrHash string) (int, error) {
	cost, _, err := parseSalt(saltOrHash)
	return int(cost), err
}

// parseSalt splits "$2?$NN$<22 chars>..." into its parts.
func parseSalt(salt string) (uint32, []byte, error) {
	if len(salt) < saltPrefixLen+encodedSaltLen {
		return 0, nil, ErrInvalidSalt
	}
	if salt[0] != '$' || salt[1] != '2' || salt[3] != '$' || salt[6] != '$' {
		return 0, nil, ErrInvalidSalt
	}

	switch salt[2] {
	case 'a', 'b', 'y':
	default:
		return 0, nil, ErrInvalidSalt
	}

	cost, err := strconv.Atoi(salt[4:6])
	if err != nil {
		return 0, nil, ErrInvalidSalt
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidRounds, cost)
	}

	rawSalt, err := bcryptEncoding.DecodeString(salt[saltPrefixLen : saltPrefixLen+encodedSaltLen])
	if err != nil {
		return 0, nil, ErrInvalidSalt
	}

	return uint32(cost), rawSalt, nil
}

// expensiveBlowfishSetup is the eksblowfish key schedule.
func expensiveBlowfishSetup(key []byte, cost uint32, salt []byte) (*blowfish.Cipher, error) {
	// The trailing NUL of the C string takes part in key expansion
	ckey := append(key[:len(key):len(key)], 0)

	c, err := blowfish.NewSaltedCipher(ckey, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	rounds := uint64(1) << cost
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(ckey, c)
		blowfish.ExpandKey(salt, c)
	}

	return c, nil
}
