package adtools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"pomelo/internal/model/ad"
)

func refOf(name string, t ad.ElementType) ResolvedRef {
	return ResolvedRef{
		Entity: &ad.Entity{Name: name},
		Image: ad.ReferenceImage{
			ElementName: name,
			ElementType: t,
			Status:      ad.StatusSuccess,
		},
	}
}

func namesOf(refs []ResolvedRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Entity.Name)
	}
	return names
}

func TestSelectReferences(t *testing.T) {
	Convey("SelectReferences 超额时按类别优先级截断", t, func() {
		Convey("不超额时原样返回", func() {
			refs := []ResolvedRef{
				refOf("Chef", ad.ElementCharacter),
				refOf("Wok", ad.ElementProp),
			}
			selected, dropped := SelectReferences(refs, 5)
			So(len(selected), ShouldEqual, 2)
			So(dropped, ShouldBeEmpty)
		})

		Convey("角色 > 道具 > 场地，类内保持原有顺序", func() {
			refs := []ResolvedRef{
				refOf("Harbor", ad.ElementLocation),
				refOf("Chef", ad.ElementCharacter),
				refOf("Wok", ad.ElementProp),
				refOf("Rival", ad.ElementCharacter),
				refOf("Kitchen", ad.ElementLocation),
				refOf("Critic", ad.ElementCharacter),
				refOf("Cleaver", ad.ElementProp),
				refOf("Rooftop", ad.ElementLocation),
				refOf("Apron", ad.ElementProp),
			}

			selected, dropped := SelectReferences(refs, 5)
			So(namesOf(selected), ShouldResemble, []string{"Chef", "Rival", "Critic", "Wok", "Cleaver"})
			So(namesOf(dropped), ShouldResemble, []string{"Apron", "Harbor", "Kitchen", "Rooftop"})
		})

		Convey("上限非法时使用默认上限", func() {
			refs := make([]ResolvedRef, 0, 7)
			for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
				refs = append(refs, refOf(name, ad.ElementCharacter))
			}
			selected, dropped := SelectReferences(refs, 0)
			So(len(selected), ShouldEqual, MaxSceneReferences)
			So(len(dropped), ShouldEqual, 2)
		})
	})
}
