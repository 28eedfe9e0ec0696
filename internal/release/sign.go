// SPDX-License-Identifier: MPL-2.0

package release

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	minisign "github.com/jedisct1/go-minisign"
)

// minisignBin is the external signer invoked when a secret key is supplied.
const minisignBin = "minisign"

// signArchive signs archivePath with the minisign secret key at
// secretKeyPath and returns the signature path. When a matching public key
// (`<secret>.pub`) sits next to the secret key, the fresh signature is
// verified before returning.
//
// Signing is only attempted when a credential was supplied, so failures
// here are fatal to the packaging run: shipping an archive the release
// pipeline believes is signed but is not would be worse than aborting.
func signArchive(archivePath, secretKeyPath string, logger *log.Logger) (string, error) {
	if _, err := os.Stat(secretKeyPath); err != nil {
		return "", fmt.Errorf("minisign secret key not found at %s", secretKeyPath)
	}
	if _, err := exec.LookPath(minisignBin); err != nil {
		return "", fmt.Errorf("signing requested but %q not found on PATH", minisignBin)
	}

	sigPath := archivePath + ".minisig"

	logger.Info("signing archive", "archive", archivePath)
	cmd := exec.Command(minisignBin, "-S", "-s", secretKeyPath, "-m", archivePath, "-x", sigPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("minisign failed: %w", err)
	}

	pubKeyPath := secretKeyPath + ".pub"
	if _, err := os.Stat(pubKeyPath); err == nil {
		if err := verifySignature(archivePath, sigPath, pubKeyPath); err != nil {
			return "", err
		}
		logger.Debug("signature verified against public key", "pubkey", pubKeyPath)
	}

	return sigPath, nil
}

// verifySignature checks sigPath over the archive bytes with the given
// minisign public key.
func verifySignature(archivePath, sigPath, pubKeyPath string) error {
	pubKey, err := minisign.NewPublicKeyFromFile(pubKeyPath)
	if err != nil {
		return fmt.Errorf("read minisign pubkey: %w", err)
	}

	sig, err := minisign.NewSignatureFromFile(sigPath)
	if err != nil {
		return fmt.Errorf("read minisign signature: %w", err)
	}

	content, err := os.ReadFile(archivePath)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	valid, err := pubKey.Verify(content, sig)
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}
	if !valid {
		return fmt.Errorf("signature verification failed for %s", archivePath)
	}
	return nil
}
