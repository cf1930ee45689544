package main

// @title           Lera Assistant API
// @version         1.0
// @description     텍스트/음성 대화, 웹 검색 보강, 수학 증명 PDF 생성을 제공하는 개인 비서 백엔드
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     "Bearer {token}" 형식으로 입력
func main() {
	Execute()
}
