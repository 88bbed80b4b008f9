package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testNodeComponent struct {
	Width, Height float32
}

type testTextComponent struct {
	Text string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("InvalidEntity should never be allocated")
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount() = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testNodeComponent{Width: 200, Height: 20})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testNodeComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	node := comp.(*testNodeComponent)
	if node.Width != 200 || node.Height != 20 {
		t.Errorf("Component data mismatch, got (%v, %v)", node.Width, node.Height)
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体：静默忽略
	em.AddComponent(EntityID(42), &testNodeComponent{})
	if em.Exists(EntityID(42)) {
		t.Error("AddComponent must not create entities")
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTextComponent{Text: "50.0"})

	text, ok := GetComponent[*testTextComponent](em, id)
	if !ok {
		t.Fatal("GetComponent[*testTextComponent] should find the component")
	}
	if text.Text != "50.0" {
		t.Errorf("Text = %q, want %q", text.Text, "50.0")
	}

	if _, ok := GetComponent[*testNodeComponent](em, id); ok {
		t.Error("GetComponent[*testNodeComponent] should not find a missing component")
	}

	if !HasComponent[*testTextComponent](em, id) {
		t.Error("HasComponent should be true")
	}

	RemoveComponent[*testTextComponent](em, id)
	if HasComponent[*testTextComponent](em, id) {
		t.Error("HasComponent should be false after RemoveComponent")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testNodeComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if HasComponent[*testNodeComponent](em, id) {
		t.Error("Components should be removed with the entity")
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()

	var ids []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testNodeComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testTextComponent{})
			ids = append(ids, id)
		}
	}

	// 多次查询结果必须一致且升序（map 遍历顺序是随机的）
	for round := 0; round < 5; round++ {
		got := GetEntitiesWith2[*testNodeComponent, *testTextComponent](em)
		if len(got) != len(ids) {
			t.Fatalf("len = %d, want %d", len(got), len(ids))
		}
		for i := range got {
			if got[i] != ids[i] {
				t.Fatalf("round %d: got[%d] = %d, want %d", round, i, got[i], ids[i])
			}
		}
	}

	if n := len(GetEntitiesWith1[*testNodeComponent](em)); n != 50 {
		t.Errorf("GetEntitiesWith1 = %d entities, want 50", n)
	}
}
