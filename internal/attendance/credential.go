package attendance

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultSecret 首次运行时的默认密码
	DefaultSecret = "admin123"
	// MinSecretLength 新密码最少字符数
	MinSecretLength = 4
)

// Hasher 密码摘要方案
type Hasher interface {
	Hash(secret string) (string, error)
}

// SHA256Hasher 无盐 SHA-256 十六进制摘要，与既有数据文档兼容。
// 安全性较弱，新部署建议使用 BcryptHasher。
type SHA256Hasher struct{}

// Hash 计算摘要
func (SHA256Hasher) Hash(secret string) (string, error) {
	return sha256Hex(secret), nil
}

// BcryptHasher 加盐迭代摘要
type BcryptHasher struct {
	Cost int
}

// Hash 计算 bcrypt 摘要
func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func sha256Hex(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// DefaultSecretHash 默认密码的摘要（文档缺失 passwordHash 时使用）
func DefaultSecretHash() string {
	return sha256Hex(DefaultSecret)
}

func isBcryptHash(h string) bool {
	return strings.HasPrefix(h, "$2a$") || strings.HasPrefix(h, "$2b$") || strings.HasPrefix(h, "$2y$")
}

// CredentialGate 保存共享密码的摘要，提供校验与修改
type CredentialGate struct {
	hash   string
	hasher Hasher
}

// NewCredentialGate 创建凭证门；hasher 用于生成新摘要，校验时按已存摘要自动识别方案
func NewCredentialGate(hash string, hasher Hasher) *CredentialGate {
	if hasher == nil {
		hasher = SHA256Hasher{}
	}
	return &CredentialGate{hash: hash, hasher: hasher}
}

// Hash 当前存储的摘要
func (g *CredentialGate) Hash() string { return g.hash }

// Verify 校验候选密码
func (g *CredentialGate) Verify(candidate string) bool {
	if isBcryptHash(g.hash) {
		return bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(candidate)) == nil
	}
	got := sha256Hex(candidate)
	return subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(g.hash))) == 1
}

// Change 修改密码。旧密码错误返回 ErrAuth；两次输入不一致或长度不足返回 ValidationError。
// 任何失败都不会修改已存摘要。
func (g *CredentialGate) Change(oldSecret, newSecret, confirmSecret string) error {
	if !g.Verify(oldSecret) {
		return ErrAuth
	}
	if newSecret != confirmSecret {
		return invalid("confirm_password", "两次输入的新密码不一致")
	}
	return g.set(newSecret)
}

// Reset 管理员离线重置密码（不校验旧密码）
func (g *CredentialGate) Reset(newSecret string) error {
	return g.set(newSecret)
}

func (g *CredentialGate) set(secret string) error {
	if utf8.RuneCountInString(secret) < MinSecretLength {
		return invalid("new_password", "密码长度不能少于 4 个字符")
	}
	h, err := g.hasher.Hash(secret)
	if err != nil {
		return err
	}
	g.hash = h
	return nil
}
