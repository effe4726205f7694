package prompts

import (
	"fmt"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// ConceptSystemPrompt は広告コンセプト生成時のシステム指示です。
const ConceptSystemPrompt = "Eres un experto en marketing digital hispanohablante. Respondes únicamente en español perfecto, sin errores ortográficos. Creas conceptos publicitarios para consumidores de habla hispana."

// DescribePrompt は参照画像1枚ごとに視覚モデルへ渡す説明依頼です。
const DescribePrompt = "Describe esta imagen del producto en español, enfocándote en: apariencia, colores, materiales, estilo, posición y características notables que deben preservarse en un anuncio publicitario."

// ConceptPrompt は商品情報から Instagram 広告のコンセプトを依頼するプロンプトを返します。
// 価格は表記を変えずにそのまま埋め込みます。
func ConceptPrompt(p domain.Product) string {
	return fmt.Sprintf(`Eres un experto en marketing digital que habla español nativo. Tu tarea es analizar este producto de MercadoLibre y crear un concepto publicitario para Instagram.

INFORMACIÓN DEL PRODUCTO:
Título del producto: %[1]s
Precio exacto: %[2]s
Descripción: %[3]s

INSTRUCCIONES ESPECÍFICAS:
- Responde ÚNICAMENTE en español de España o Latinoamérica
- Crea un concepto de anuncio de Instagram profesional
- Usa EXACTAMENTE el precio proporcionado: %[2]s
- Asegúrate de que todo el texto esté en español correcto sin errores

Incluye en tu respuesta:
1. Un titular llamativo en español (máximo 25 caracteres)
2. Texto descriptivo atractivo en español (máximo 100 caracteres)
3. Texto de llamada a la acción en español
4. Elementos visuales a destacar
5. Sugerencias de esquema de colores
6. Sugerencias de diseño para formato Instagram (1080x1080)

IMPORTANTE: Todo debe estar en español perfecto, dirigido a consumidores hispanohablantes.`, p.Title, p.Price, p.Description)
}
