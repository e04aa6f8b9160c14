// Command shuffle-demo mirrors the teacher's main.go+server.go demo
// flow (setup, generate a statement, produce a proof, verify it) for
// the shuffle argument: it builds a random m*n deck of ElGamal
// ciphertexts, shuffles and re-masks it under a freshly sampled
// permutation, proves the shuffle, verifies the proof, and reports
// timings and proof sizes through structured logging.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/bgshuffle/shuffle-argument/commitment"
	"github.com/bgshuffle/shuffle-argument/elgamal"
	"github.com/bgshuffle/shuffle-argument/field"
	"github.com/bgshuffle/shuffle-argument/group"
	"github.com/bgshuffle/shuffle-argument/permutation"
	"github.com/bgshuffle/shuffle-argument/shuffle"
	"github.com/bgshuffle/shuffle-argument/transcript"
)

func resolveGroup(name string) (group.Group, error) {
	switch name {
	case "ristretto255":
		return group.Ristretto255(), nil
	case "secp256k1":
		return group.SecP256k1(), nil
	default:
		return nil, fmt.Errorf("unknown group %q (want ristretto255, secp256k1)", name)
	}
}

func main() {
	var (
		m         int
		n         int
		groupName string
		seed      string
	)
	pflag.IntVarP(&m, "m", "m", 4, "number of rows in the deck chunking")
	pflag.IntVarP(&n, "n", "n", 13, "number of columns in the deck chunking")
	pflag.StringVar(&groupName, "group", "ristretto255", "backing group: ristretto255, secp256k1")
	pflag.StringVar(&seed, "seed", "", "transcript seed; a fresh one is generated if empty")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("run_id", uuid.NewString()).Logger()

	grp, err := resolveGroup(groupName)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolving group")
	}
	field.SetOrder(grp.N())

	if seed == "" {
		seed = uuid.NewString()
	}
	total := m * n
	logger.Info().Int("m", m).Int("n", n).Int("total", total).Str("group", groupName).Msg("setup")

	commitKey := commitment.Setup(grp, rand.Reader, n)
	encParams := elgamal.Setup(grp)
	pk, _ := elgamal.KeyGen(encParams, rand.Reader)

	inputCiphers := make([]elgamal.Ciphertext, total)
	for i := range inputCiphers {
		msg := field.Rand(rand.Reader)
		r := field.Rand(rand.Reader)
		inputCiphers[i] = elgamal.Encrypt(encParams, pk, msg, r)
	}

	perm, err := permutation.Sample(total)
	if err != nil {
		logger.Fatal().Err(err).Msg("sampling permutation")
	}
	rho := field.SampleVector(rand.Reader, total)

	permutedInputs := permutation.Permute(perm, inputCiphers)
	shuffledCiphers := make([]elgamal.Ciphertext, total)
	for i := range shuffledCiphers {
		shuffledCiphers[i] = elgamal.Add(encParams, permutedInputs[i], elgamal.EncryptZero(encParams, pk, rho[i]))
	}

	pp := &shuffle.Parameters{
		M: m, N: n,
		Group:     grp,
		EncParams: encParams,
		PublicKey: pk,
		CommitKey: commitKey,
	}
	statement := &shuffle.Statement{InputCiphers: inputCiphers, ShuffledCiphers: shuffledCiphers}
	witness := &shuffle.Witness{Permutation: perm, Rho: rho}

	proveStart := time.Now()
	proveTs := transcript.New([]byte(seed))
	proof, err := shuffle.Prove(rand.Reader, pp, statement, witness, proveTs)
	proveElapsed := time.Since(proveStart)
	if err != nil {
		logger.Fatal().Err(err).Msg("proving shuffle")
	}
	logger.Info().
		Dur("elapsed", proveElapsed).
		Int("a_commits", len(proof.ACommits)).
		Int("b_commits", len(proof.BCommits)).
		Msg("proof generated")

	verifyStart := time.Now()
	verifyTs := transcript.New([]byte(seed))
	err = shuffle.Verify(pp, statement, proof, verifyTs)
	verifyElapsed := time.Since(verifyStart)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", verifyElapsed).Msg("proof rejected")
		os.Exit(1)
	}
	logger.Info().Dur("elapsed", verifyElapsed).Msg("proof accepted")
}
