package recovery

type TokenGenerator interface {
	GenerateRecoveryToken() Token
}
